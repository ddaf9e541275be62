// Command seed loads a small demo catalog into a running API instance
// and triggers one generation run. Intended for local development only.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

type loginResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

func main() {
	var (
		baseURL  string
		username string
		password string
		timeout  time.Duration
	)

	flag.StringVar(&baseURL, "base", "http://localhost:8080/api/v1", "API base URL")
	flag.StringVar(&username, "username", "admin", "Admin username")
	flag.StringVar(&password, "password", "admin123", "Admin password")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	token, err := login(client, baseURL, username, password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	requests := []struct {
		path string
		body map[string]interface{}
	}{
		{"/admin/teachers", map[string]interface{}{"code": "T1", "name": "Alice Nguyen", "role": "teacher"}},
		{"/admin/teachers", map[string]interface{}{"code": "T2", "name": "Bob Tran", "role": "leader"}},
		{"/admin/rooms", map[string]interface{}{"code": "R1", "name": "Room 101", "room_type": "theory"}},
		{"/admin/rooms", map[string]interface{}{"code": "R2", "name": "Lab A", "room_type": "practice"}},
		{"/admin/subjects", map[string]interface{}{"code": "MATH", "name": "Mathematics", "theory_hours": 3, "practice_hours": 0, "credit": 3}},
		{"/admin/subjects", map[string]interface{}{"code": "PHYS", "name": "Physics", "theory_hours": 2, "practice_hours": 1, "credit": 3}},
		{"/admin/student-groups", map[string]interface{}{"code": "G1", "name": "Group 1", "student_count": 30}},
		{"/admin/student-groups", map[string]interface{}{"code": "G2", "name": "Group 2", "student_count": 28}},
		{"/admin/timeslots", map[string]interface{}{"day": "Mon", "period": "1", "start_time": "07:00", "end_time": "07:45"}},
		{"/admin/timeslots", map[string]interface{}{"day": "Mon", "period": "2", "start_time": "07:45", "end_time": "08:30"}},
		{"/admin/timeslots", map[string]interface{}{"day": "Tue", "period": "1", "start_time": "07:00", "end_time": "07:45"}},
		{"/admin/teaches", map[string]interface{}{"teacher_code": "T1", "subject_code": "MATH"}},
		{"/admin/teaches", map[string]interface{}{"teacher_code": "T2", "subject_code": "PHYS"}},
		{"/admin/registrations", map[string]interface{}{"group_code": "G1", "subject_code": "MATH"}},
		{"/admin/registrations", map[string]interface{}{"group_code": "G1", "subject_code": "PHYS"}},
		{"/admin/registrations", map[string]interface{}{"group_code": "G2", "subject_code": "MATH"}},
	}

	created, skipped := 0, 0
	for _, r := range requests {
		status, err := post(client, baseURL+r.path, token, r.body)
		switch {
		case err != nil:
			log.Fatalf("POST %s failed: %v", r.path, err)
		case status == http.StatusCreated || status == http.StatusOK:
			created++
		case status == http.StatusConflict:
			skipped++
		default:
			log.Fatalf("POST %s returned unexpected status %d", r.path, status)
		}
	}
	log.Printf("seeded %d records (%d already present)", created, skipped)

	status, err := post(client, baseURL+"/admin/timetable/generate", token, nil)
	if err != nil || status != http.StatusOK {
		log.Fatalf("generation failed: status=%d err=%v", status, err)
	}
	log.Println("timetable generated; check GET /schedule")
}

func login(client *http.Client, baseURL, username, password string) (string, error) {
	payload, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(baseURL+"/auth/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Data.AccessToken == "" {
		return "", fmt.Errorf("empty access token in response")
	}
	return parsed.Data.AccessToken, nil
}

func post(client *http.Client, url, token string, body map[string]interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
