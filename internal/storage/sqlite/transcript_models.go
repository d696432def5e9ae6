package sqlite

import "time"

// TranscriptRecord is one final recognition result of a streaming session
type TranscriptRecord struct {
	ID          int64     `json:"id"`
	SessionID   string    `json:"session_id"`
	ResultIndex int64     `json:"result_index"`
	Transcript  string    `json:"transcript"`
	Confidence  *float64  `json:"confidence,omitempty"`
	Model       string    `json:"model,omitempty"`
	Source      string    `json:"source,omitempty"` // file the audio was read from
	Timestamp   time.Time `json:"timestamp"`
	CreatedAt   time.Time `json:"created_at"`
}
