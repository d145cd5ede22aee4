//go:build integration
// +build integration

package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// These tests run against a live API (make run, docker compose, ...) at
// INTEGRATION_BASE_URL.

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func call(t *testing.T, method, url string, payload any) (int, map[string]any) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func TestLiveHealthz(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")

	status, _ := call(t, http.MethodGet, baseURL+"/healthz", nil)
	if status != http.StatusOK {
		t.Fatalf("unexpected status code: %d", status)
	}
}

func TestLiveCategoryQuestionQuizFlow(t *testing.T) {
	baseURL := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
	name := fmt.Sprintf("Mythology-%d", time.Now().UnixNano())

	status, out := call(t, http.MethodPost, baseURL+"/categories", map[string]any{"category": name})
	if status != http.StatusOK {
		t.Fatalf("create category: status %d, body %v", status, out)
	}
	categoryID := int(out["created"].(float64))

	status, out = call(t, http.MethodPost, baseURL+"/categories", map[string]any{"category": name})
	if status != http.StatusBadRequest || out["message"] != "duplicate entries" {
		t.Fatalf("duplicate category: status %d, body %v", status, out)
	}

	status, out = call(t, http.MethodPost, baseURL+"/questions", map[string]any{
		"question": "Who is the Norse god of thunder?", "answer": "Thor", "difficulty": 2, "category": categoryID,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: status %d, body %v", status, out)
	}
	questionID := int(out["created"].(float64))

	status, out = call(t, http.MethodGet, fmt.Sprintf("%s/categories/%d/questions", baseURL, categoryID), nil)
	if status != http.StatusOK || out["total_questions"].(float64) != 1 {
		t.Fatalf("list by category: status %d, body %v", status, out)
	}

	quiz := map[string]any{
		"previous_questions": []int{},
		"quiz_category":      map[string]any{"id": categoryID, "type": name},
	}
	status, out = call(t, http.MethodPost, baseURL+"/quizzes", quiz)
	if status != http.StatusOK || out["question"] == nil {
		t.Fatalf("quiz draw: status %d, body %v", status, out)
	}

	quiz["previous_questions"] = []int{questionID}
	status, out = call(t, http.MethodPost, baseURL+"/quizzes", quiz)
	if status != http.StatusOK || out["question"] != nil {
		t.Fatalf("quiz end: status %d, body %v", status, out)
	}

	status, _ = call(t, http.MethodDelete, fmt.Sprintf("%s/questions/%d", baseURL, questionID), nil)
	if status != http.StatusOK {
		t.Fatalf("delete: status %d", status)
	}
	status, _ = call(t, http.MethodDelete, fmt.Sprintf("%s/questions/%d", baseURL, questionID), nil)
	if status != http.StatusNotFound {
		t.Fatalf("second delete: status %d", status)
	}
}
