package oneai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/uniai-go/uniai"
)

func TestLaunchTranscription(t *testing.T) {
	var gotPath string
	var gotRequest map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task_id": "task-123"}`))
	}))
	defer server.Close()
	client := New("test-key", WithBaseURL(server.URL))

	job, err := client.LaunchTranscription(context.Background(), uniai.TranscriptionRequest{
		FileURL:  "https://example.com/call.wav",
		Speakers: 2,
	})
	if err != nil {
		t.Fatalf("LaunchTranscription() error = %v", err)
	}
	if job.ProviderJobID != "task-123" {
		t.Errorf("ProviderJobID = %q, want task-123", job.ProviderJobID)
	}
	if !strings.HasSuffix(gotPath, "/async") {
		t.Errorf("request path = %q, want the async endpoint", gotPath)
	}
	if gotRequest["input_type"] != "conversation" {
		t.Errorf("input_type = %v", gotRequest["input_type"])
	}
	// No language given, so the engine is asked to work multilingually.
	if gotRequest["multilingual"] != true {
		t.Errorf("multilingual = %v, want true", gotRequest["multilingual"])
	}
	step := gotRequest["steps"].([]any)[0].(map[string]any)
	if step["skill"] != "transcribe" {
		t.Errorf("skill = %v", step["skill"])
	}
	params := step["params"].(map[string]any)
	if params["number_of_speakers"] != float64(2) {
		t.Errorf("number_of_speakers = %v, want 2", params["number_of_speakers"])
	}
}

func TestLaunchTranscriptionNoTaskID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()
	client := New("test-key", WithBaseURL(server.URL))

	_, err := client.LaunchTranscription(context.Background(), uniai.TranscriptionRequest{FileURL: "https://example.com/a.wav"})
	var providerErr uniai.ProviderErr
	if !errors.As(err, &providerErr) {
		t.Fatalf("error = %v, want ProviderErr", err)
	}
}

func TestTranscriptionResult(t *testing.T) {
	completed := `{
		"status": "COMPLETED",
		"result": {
			"input_text": "speaker1\nHello there.\n\nspeaker2\nHi, how are you?",
			"output": [{"labels": [
				{"span_text": "Hello there.", "speaker": "speaker1", "timestamp": 0.5, "timestamp_end": 1.8},
				{"span_text": "Hi, how are you?", "speaker": "speaker2", "timestamp": 2.1, "timestamp_end": 3.9}
			]}]
		}
	}`

	tests := []struct {
		name       string
		body       string
		wantStatus uniai.JobStatus
		wantErr    bool
	}{
		{name: "running task is pending", body: `{"status": "RUNNING"}`, wantStatus: uniai.JobPending},
		{name: "completed task", body: completed, wantStatus: uniai.JobSucceeded},
		{name: "failed task", body: `{"status": "FAILED"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()
			client := New("test-key", WithBaseURL(server.URL))

			resp, err := client.TranscriptionResult(context.Background(), "task-123")
			if tt.wantErr {
				var providerErr uniai.ProviderErr
				if !errors.As(err, &providerErr) {
					t.Fatalf("error = %v, want ProviderErr", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("TranscriptionResult() error = %v", err)
			}
			if !strings.HasSuffix(gotPath, "/async/tasks/task-123") {
				t.Errorf("request path = %q", gotPath)
			}
			if resp.Status != tt.wantStatus {
				t.Fatalf("Status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if resp.ProviderJobID != "task-123" {
				t.Errorf("ProviderJobID = %q", resp.ProviderJobID)
			}
			if tt.wantStatus != uniai.JobSucceeded {
				return
			}

			stt := resp.Response.Standardized
			if stt.Text != "Hello there. Hi, how are you?" {
				t.Errorf("Text = %q", stt.Text)
			}
			if stt.Diarization.TotalSpeakers != 2 {
				t.Errorf("TotalSpeakers = %d, want 2", stt.Diarization.TotalSpeakers)
			}
			if len(stt.Diarization.Entries) != 2 {
				t.Fatalf("Entries = %v, want 2", stt.Diarization.Entries)
			}
			first := stt.Diarization.Entries[0]
			if first.Speaker != 1 || first.Segment != "Hello there." || first.StartTime != 0.5 || first.EndTime != 1.8 {
				t.Errorf("Entries[0] = %+v", first)
			}
			if stt.Diarization.Entries[1].Speaker != 2 {
				t.Errorf("Entries[1].Speaker = %d, want 2", stt.Diarization.Entries[1].Speaker)
			}
		})
	}
}

func TestSpeakerNumber(t *testing.T) {
	tests := []struct {
		id   string
		want int
	}{
		{"speaker1", 1},
		{"speaker12", 12},
		{"narrator", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := speakerNumber(tt.id); got != tt.want {
			t.Errorf("speakerNumber(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}
