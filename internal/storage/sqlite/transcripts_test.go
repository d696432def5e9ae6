package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"github.com/yegors/watson-go/pkg/logger"
)

func openTestStorage(t *testing.T) *TranscriptStorage {
	t.Helper()

	storage, err := Open(filepath.Join(t.TempDir(), "transcripts.db"), logger.FromZap(zaptest.NewLogger(t)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })
	return storage
}

func TestStoreAndGetTranscriptsBySession(t *testing.T) {
	t.Parallel()

	storage := openTestStorage(t)
	session := uuid.NewString()
	other := uuid.NewString()
	confidence := 0.87

	records := []*TranscriptRecord{
		{SessionID: session, ResultIndex: 1, Transcript: "second", Model: "en-US_BroadbandModel"},
		{SessionID: session, ResultIndex: 0, Transcript: "first", Confidence: &confidence, Source: "call.wav"},
		{SessionID: other, ResultIndex: 0, Transcript: "elsewhere"},
	}
	for _, r := range records {
		id, err := storage.StoreTranscript(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id == 0 || r.ID != id {
			t.Fatalf("expected id to be set, got %d / %d", id, r.ID)
		}
	}

	got, err := storage.GetTranscriptsBySession(session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Transcript != "first" || got[1].Transcript != "second" {
		t.Fatalf("unexpected transcripts: %+v", got)
	}
	if got[0].Confidence == nil || *got[0].Confidence != confidence || got[0].Source != "call.wav" {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if got[1].Confidence != nil || got[1].Model != "en-US_BroadbandModel" || got[1].Source != "" {
		t.Fatalf("unexpected second record: %+v", got[1])
	}
	if got[0].CreatedAt.IsZero() || got[0].Timestamp.IsZero() {
		t.Fatal("expected timestamps to be filled")
	}
}

func TestGetRecentTranscripts(t *testing.T) {
	t.Parallel()

	storage := openTestStorage(t)
	session := uuid.NewString()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, text := range []string{"oldest", "middle", "newest"} {
		_, err := storage.StoreTranscript(&TranscriptRecord{
			SessionID:   session,
			ResultIndex: int64(i),
			Transcript:  text,
			Timestamp:   base.Add(time.Duration(i) * 500 * time.Millisecond),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := storage.GetRecentTranscripts(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Transcript != "newest" || got[1].Transcript != "middle" {
		t.Fatalf("unexpected recent transcripts: %+v", got)
	}
	if !got[1].Timestamp.Equal(base.Add(500 * time.Millisecond)) {
		t.Fatalf("timestamp did not survive storage: %s", got[1].Timestamp)
	}

	if _, err := storage.GetRecentTranscripts(0); err == nil {
		t.Fatal("expected error for zero limit")
	}
}

func TestStoreTranscriptRejectsBadSession(t *testing.T) {
	t.Parallel()

	storage := openTestStorage(t)
	if _, err := storage.StoreTranscript(&TranscriptRecord{SessionID: "not-a-uuid", Transcript: "x"}); err == nil {
		t.Fatal("expected error for invalid session id")
	}
	if _, err := storage.StoreTranscript(nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("", nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
