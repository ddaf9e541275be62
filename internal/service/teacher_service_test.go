package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
)

type mockTeacherRepo struct {
	teachers   []models.Teacher
	found      *models.Teacher
	findErr    error
	exists     bool
	existsErr  error
	created    *models.Teacher
	updated    *models.Teacher
	deleteErr  error
	existsCode string
}

func (m *mockTeacherRepo) List(ctx context.Context, search string, page, size int) ([]models.Teacher, int, error) {
	return m.teachers, len(m.teachers), nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.found, nil
}

func (m *mockTeacherRepo) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	m.existsCode = code
	return m.exists, m.existsErr
}

func (m *mockTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	teacher.ID = "t-new"
	m.created = teacher
	return nil
}

func (m *mockTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	m.updated = teacher
	return nil
}

func (m *mockTeacherRepo) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func newTeacherSvc(repo *mockTeacherRepo) *TeacherService {
	return NewTeacherService(repo, validator.New(), zap.NewNop())
}

func TestTeacherServiceCreateNormalizesCode(t *testing.T) {
	repo := &mockTeacherRepo{}
	svc := newTeacherSvc(repo)

	teacher, err := svc.Create(context.Background(), CreateTeacherRequest{Code: "  t1 ", Name: "Teacher One", Role: "teacher"})
	require.NoError(t, err)
	assert.Equal(t, "T1", teacher.Code)
	assert.Equal(t, "t-new", teacher.ID)
	assert.Equal(t, "T1", repo.existsCode)
}

func TestTeacherServiceCreateDuplicateCode(t *testing.T) {
	repo := &mockTeacherRepo{exists: true}
	svc := newTeacherSvc(repo)

	_, err := svc.Create(context.Background(), CreateTeacherRequest{Code: "T1", Name: "Teacher One", Role: "teacher"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestTeacherServiceCreateInvalidRole(t *testing.T) {
	svc := newTeacherSvc(&mockTeacherRepo{})

	_, err := svc.Create(context.Background(), CreateTeacherRequest{Code: "T1", Name: "Teacher One", Role: "principal"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceGetNotFound(t *testing.T) {
	repo := &mockTeacherRepo{findErr: sql.ErrNoRows}
	svc := newTeacherSvc(repo)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceUpdate(t *testing.T) {
	repo := &mockTeacherRepo{found: &models.Teacher{ID: "t1", Code: "T1", Name: "Old", Role: "teacher"}}
	svc := newTeacherSvc(repo)

	teacher, err := svc.Update(context.Background(), "t1", UpdateTeacherRequest{Code: "T1", Name: "New Name", Role: "leader"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", teacher.Name)
	assert.Equal(t, "leader", teacher.Role)
	require.NotNil(t, repo.updated)
}

func TestTeacherServiceDeleteNotFound(t *testing.T) {
	repo := &mockTeacherRepo{deleteErr: sql.ErrNoRows}
	svc := newTeacherSvc(repo)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestTeacherServiceListDefaultsPagination(t *testing.T) {
	repo := &mockTeacherRepo{teachers: []models.Teacher{{ID: "t1"}}}
	svc := newTeacherSvc(repo)

	teachers, page, err := svc.List(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, teachers, 1)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 1, page.TotalCount)
}
