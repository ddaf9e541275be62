package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BTEC2025/automatic-timetable-backend/internal/models"
	appErrors "github.com/BTEC2025/automatic-timetable-backend/pkg/errors"
	"github.com/BTEC2025/automatic-timetable-backend/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type scheduleReader interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.ScheduleEntry, error)
}

type timeslotReader interface {
	ListAll(ctx context.Context) ([]models.Timeslot, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult carries rendered bytes with transport metadata.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the persisted timetable as CSV or PDF.
type ExportService struct {
	schedules scheduleReader
	timeslots timeslotReader
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService wires exporter dependencies.
func NewExportService(schedules scheduleReader, timeslots timeslotReader, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{schedules: schedules, timeslots: timeslots, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the current schedule in the requested format.
func (s *ExportService) Export(ctx context.Context, format string, filter models.ScheduleFilter) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	entries, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}

	slots, err := s.timeslots.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeslots")
	}
	slotsByID := make(map[string]models.Timeslot, len(slots))
	for _, slot := range slots {
		slotsByID[slot.ID] = slot
	}

	dataset := buildScheduleDataset(entries, slotsByID)
	stamp := time.Now().UTC().Format("20060102-150405")

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("timetable-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	default:
		data, err := s.pdf.Render(dataset, "Weekly Timetable")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("timetable-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	}
}

func buildScheduleDataset(entries []models.ScheduleEntry, slots map[string]models.Timeslot) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Day", "Period", "Time", "Group", "Subject", "Teacher", "Room"},
		Rows:    make([]map[string]string, 0, len(entries)),
	}
	for _, entry := range entries {
		row := map[string]string{
			"Group":   entry.GroupCode,
			"Subject": entry.SubjectCode,
			"Teacher": entry.TeacherCode,
			"Room":    entry.RoomCode,
		}
		if slot, ok := slots[entry.TimeslotID]; ok {
			row["Day"] = slot.Day
			row["Period"] = slot.Period
			row["Time"] = fmt.Sprintf("%s-%s", slot.StartTime, slot.EndTime)
		} else {
			row["Day"] = "unknown"
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset
}
