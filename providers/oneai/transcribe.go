package oneai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/uniai-go/uniai"
)

// Vendor task states for asynchronous pipelines.
const (
	taskCompleted = "COMPLETED"
	taskRunning   = "RUNNING"
)

// LaunchTranscription implements uniai.Transcriber. The audio is referenced
// by URL and transcribed by the whisper engine with speaker detection on, so
// results carry diarization.
func (c *Client) LaunchTranscription(ctx context.Context, req uniai.TranscriptionRequest) (uniai.TranscriptionJob, error) {
	params := map[string]any{
		"speaker_detection": true,
		"engine":            "whisper",
	}
	if req.Speakers > 0 {
		params["number_of_speakers"] = req.Speakers
	}
	body, err := json.Marshal(pipelineRequest{
		Input:     req.FileURL,
		InputType: "conversation",
		Steps: []pipelineStep{{
			Skill:  "transcribe",
			Params: params,
		}},
		Multilingual: req.Language == "",
	})
	if err != nil {
		return uniai.TranscriptionJob{}, fmt.Errorf("encoding oneai request: %w", err)
	}

	var launched struct {
		TaskID string `json:"task_id"`
	}
	if _, err := c.do(ctx, http.MethodPost, c.baseURL+"/async", body, &launched); err != nil {
		return uniai.TranscriptionJob{}, err
	}
	if launched.TaskID == "" {
		return uniai.TranscriptionJob{}, uniai.ProviderErr{Provider: Name, Message: "launch returned no task id"}
	}
	return uniai.TranscriptionJob{ProviderJobID: launched.TaskID}, nil
}

// TranscriptionResult implements uniai.Transcriber by polling the task. A
// running task yields JobPending; a completed one yields the transcript with
// per-word diarization entries.
func (c *Client) TranscriptionResult(ctx context.Context, providerJobID string) (uniai.AsyncResponse[uniai.SpeechToText], error) {
	var task struct {
		Status string `json:"status"`
		Result struct {
			InputText string           `json:"input_text"`
			Output    []pipelineOutput `json:"output"`
		} `json:"result"`
	}
	raw, err := c.do(ctx, http.MethodGet, c.baseURL+"/async/tasks/"+providerJobID, nil, &task)
	if err != nil {
		return uniai.AsyncResponse[uniai.SpeechToText]{}, err
	}

	switch task.Status {
	case taskRunning:
		return uniai.AsyncResponse[uniai.SpeechToText]{
			Status:        uniai.JobPending,
			ProviderJobID: providerJobID,
		}, nil
	case taskCompleted:
		// Transcript lines arrive as "speaker\ntext" paragraphs; keep the
		// text lines only.
		var text strings.Builder
		for _, paragraph := range strings.Split(task.Result.InputText, "\n\n") {
			if paragraph == "" {
				continue
			}
			lines := strings.Split(paragraph, "\n")
			text.WriteString(lines[len(lines)-1])
			text.WriteString(" ")
		}

		var entries []uniai.SpeechDiarizationEntry
		speakers := make(map[string]struct{})
		if len(task.Result.Output) > 0 {
			for _, l := range task.Result.Output[0].Labels {
				speakers[l.Speaker] = struct{}{}
				entries = append(entries, uniai.SpeechDiarizationEntry{
					Segment:   l.SpanText,
					Speaker:   speakerNumber(l.Speaker),
					StartTime: l.Timestamp,
					EndTime:   l.TimestampEnd,
				})
			}
		}

		return uniai.AsyncResponse[uniai.SpeechToText]{
			Status:        uniai.JobSucceeded,
			ProviderJobID: providerJobID,
			Response: uniai.Response[uniai.SpeechToText]{
				Raw: raw,
				Standardized: uniai.SpeechToText{
					Text: strings.TrimSpace(text.String()),
					Diarization: uniai.SpeechDiarization{
						TotalSpeakers: len(speakers),
						Entries:       entries,
					},
				},
			},
		}, nil
	default:
		return uniai.AsyncResponse[uniai.SpeechToText]{}, uniai.ProviderErr{
			Provider: Name,
			Message:  fmt.Sprintf("transcription task failed with status %q", task.Status),
		}
	}
}

// speakerNumber extracts the ordinal from vendor speaker ids like "speaker3".
func speakerNumber(id string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(id, "speaker"))
	if err != nil {
		return 0
	}
	return n
}
