package speechtotext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"

	"github.com/yegors/watson-go/internal/audio"
	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

var upgrader = websocket.Upgrader{}

// fakeRecognizer records what a client sent over one session
type fakeRecognizer struct {
	query     url.Values
	auth      string
	start     []byte
	chunks    []int
	audio     []byte
	stops     int
	afterStop int
}

func newWebSocketService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/speech-to-text/api/v1/recognize", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	svc, err := NewService(&Options{
		ServiceOptions: core.ServiceOptions{
			URL:           server.URL + "/speech-to-text/api",
			Authenticator: &core.BearerTokenAuthenticator{Token: "token"},
			Logger:        logger.FromZap(zaptest.NewLogger(t)),
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func upgrade(t *testing.T, w http.ResponseWriter, r *http.Request) *websocket.Conn {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.Errorf("upgrade failed: %v", err)
		return nil
	}
	return conn
}

func sendText(conn *websocket.Conn, frame string) {
	_ = conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

// collect drains the callback channel until it is closed
func collect(t *testing.T, cb *ChannelCallback) []RecognitionEvent {
	t.Helper()

	timeout := time.After(5 * time.Second)
	var events []RecognitionEvent
	for {
		select {
		case ev, ok := <-cb.Events():
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", kinds(events))
			return nil
		}
	}
}

func kinds(events []RecognitionEvent) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func TestRecognizeUsingWebSocketStreamsAudio(t *testing.T) {
	t.Parallel()

	records := make(chan fakeRecognizer, 1)
	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		rec := fakeRecognizer{query: r.URL.Query(), auth: r.Header.Get("Authorization")}
		conn := upgrade(t, w, r)
		if conn == nil {
			return
		}
		defer conn.Close()

		_, start, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("failed to read start: %v", err)
			return
		}
		rec.start = start
		sendText(conn, `{"state":"listening"}`)

		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				break
			}
			if rec.stops > 0 {
				rec.afterStop++
				continue
			}
			if mt == websocket.BinaryMessage {
				rec.chunks = append(rec.chunks, len(data))
				rec.audio = append(rec.audio, data...)
				continue
			}
			if gjson.GetBytes(data, "action").String() == "stop" {
				rec.stops++
				sendText(conn, `not json`)
				sendText(conn, `{"results":[{"final":false,"alternatives":[{"transcript":"hello"}]}],"result_index":0}`)
				sendText(conn, `{"results":[{"final":true,"alternatives":[{"transcript":"hello world","confidence":0.91}]}],"result_index":0}`)
				sendText(conn, `{"state":"listening"}`)
			}
		}
		records <- rec
	})

	payload := bytes.Repeat([]byte{0x01, 0x02}, 5000)
	opts := NewRecognizeWebSocketOptions("audio/l16;rate=16000").
		SetModel("en-US_BroadbandModel").
		SetInterimResults(true).
		SetTimestamps(true)

	cb := NewChannelCallback(16)
	session, err := svc.RecognizeUsingWebSocket(context.Background(), bytes.NewReader(payload), opts, cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID() == "" {
		t.Fatal("expected a session id")
	}

	events := collect(t, cb)
	want := []EventKind{
		EventConnected,
		EventListening,
		EventTranscription,
		EventTranscription,
		EventTranscriptionComplete,
		EventDisconnected,
	}
	if !slices.Equal(kinds(events), want) {
		t.Fatalf("expected events %v, got %v", want, kinds(events))
	}
	final := events[3].Results
	if !final.IsFinal() || final.Transcript() != "hello world" {
		t.Fatalf("unexpected final results: %+v", final)
	}
	if err := session.Wait(); err != nil {
		t.Fatalf("expected clean session, got %v", err)
	}
	if session.State() != StateClosed {
		t.Fatalf("expected closed state, got %s", session.State())
	}
	if session.BytesSent() != int64(len(payload)) || session.ChunksSent() != 3 {
		t.Fatalf("unexpected counters: %d bytes, %d chunks", session.BytesSent(), session.ChunksSent())
	}

	var rec fakeRecognizer
	select {
	case rec = <-records:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not finish")
	}

	if rec.auth != "Bearer token" {
		t.Fatalf("expected bearer token on handshake, got %q", rec.auth)
	}
	if rec.query.Get("model") != "en-US_BroadbandModel" {
		t.Fatalf("expected model in url, got %v", rec.query)
	}
	start := gjson.ParseBytes(rec.start)
	if start.Get("action").String() != "start" ||
		start.Get("content-type").String() != "audio/l16;rate=16000" ||
		!start.Get("interim_results").Bool() ||
		!start.Get("timestamps").Bool() {
		t.Fatalf("unexpected start message: %s", rec.start)
	}
	if start.Get("model").Exists() || start.Get("word_confidence").Exists() {
		t.Fatalf("start message carries unset or url-only fields: %s", rec.start)
	}
	if !slices.Equal(rec.chunks, []int{4096, 4096, 1808}) {
		t.Fatalf("unexpected chunk sizes: %v", rec.chunks)
	}
	if !bytes.Equal(rec.audio, payload) {
		t.Fatal("audio arrived corrupted")
	}
	if rec.stops != 1 || rec.afterStop != 0 {
		t.Fatalf("expected one stop and nothing after it, got %d stops and %d frames after", rec.stops, rec.afterStop)
	}
}

func TestRecognizeUsingWebSocketErrorFrame(t *testing.T) {
	t.Parallel()

	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		conn := upgrade(t, w, r)
		if conn == nil {
			return
		}
		defer conn.Close()

		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		sendText(conn, `{"error":"unable to transcode data stream audio/wav -> audio/x-float-array"}`)
		// trailing frames must not reach the callback
		sendText(conn, `{"state":"listening"}`)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	cb := NewChannelCallback(16)
	session, err := svc.RecognizeUsingWebSocket(context.Background(), strings.NewReader("RIFF"),
		NewRecognizeWebSocketOptions("audio/wav"), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := collect(t, cb)
	want := []EventKind{EventConnected, EventError, EventDisconnected}
	if !slices.Equal(kinds(events), want) {
		t.Fatalf("expected events %v, got %v", want, kinds(events))
	}

	var rerr *RecognitionError
	if !errors.As(events[1].Err, &rerr) || !strings.Contains(rerr.Message, "unable to transcode") {
		t.Fatalf("expected recognition error, got %v", events[1].Err)
	}
	if errors.Is(events[1].Err, ErrInactivityTimeout) {
		t.Fatal("transcode error must not match ErrInactivityTimeout")
	}
	if err := session.Wait(); !errors.As(err, &rerr) {
		t.Fatalf("expected Wait to return the recognition error, got %v", err)
	}
}

func TestRecognizeUsingWebSocketSpeakerLabels(t *testing.T) {
	t.Parallel()

	starts := make(chan []byte, 1)
	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		conn := upgrade(t, w, r)
		if conn == nil {
			return
		}
		defer conn.Close()

		_, start, err := conn.ReadMessage()
		if err != nil {
			return
		}
		starts <- start
		sendText(conn, `{"state":"listening"}`)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if gjson.GetBytes(data, "action").String() == "stop" {
				sendText(conn, `{"results":[{"final":true,"alternatives":[{"transcript":"two speakers"}]}],"result_index":0}`)
				sendText(conn, `{"speaker_labels":[{"from":0.1,"to":0.5,"speaker":0,"confidence":0.9,"final":false},{"from":0.5,"to":0.9,"speaker":1,"confidence":0.8,"final":true}]}`)
				sendText(conn, `{"state":"listening"}`)
			}
		}
	})

	cb := NewChannelCallback(16)
	_, err := svc.RecognizeUsingWebSocket(context.Background(), bytes.NewReader(make([]byte, 100)),
		NewRecognizeWebSocketOptions("audio/l16;rate=16000").SetSpeakerLabels(true), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := collect(t, cb)
	want := []EventKind{
		EventConnected,
		EventListening,
		EventTranscription,
		EventTranscription,
		EventTranscriptionComplete,
		EventDisconnected,
	}
	if !slices.Equal(kinds(events), want) {
		t.Fatalf("expected events %v, got %v", want, kinds(events))
	}

	labels := events[3].Results
	if len(labels.Results) != 0 || len(labels.SpeakerLabels) != 2 {
		t.Fatalf("expected a labels-only result, got %+v", labels)
	}
	if labels.SpeakerLabels[1].Speaker != 1 || labels.SpeakerLabels[1].From != 0.5 || !labels.SpeakerLabels[1].Final {
		t.Fatalf("unexpected speaker label: %+v", labels.SpeakerLabels[1])
	}

	select {
	case start := <-starts:
		if !gjson.GetBytes(start, "speaker_labels").Bool() {
			t.Fatalf("expected speaker_labels in start message: %s", start)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive a start message")
	}
}

func TestRecognizeUsingWebSocketInactivityTimeout(t *testing.T) {
	t.Parallel()

	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		conn := upgrade(t, w, r)
		if conn == nil {
			return
		}
		defer conn.Close()

		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		sendText(conn, `{"state":"listening"}`)
		sendText(conn, `{"error":"Session timed out due to inactivity after 30 seconds."}`)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	// audio that never ends keeps the stream open until the service gives up
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	cb := NewChannelCallback(16)
	session, err := svc.RecognizeUsingWebSocket(context.Background(), pr,
		NewRecognizeWebSocketOptions("audio/flac").SetInactivityTimeout(30), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events := collect(t, cb)
	want := []EventKind{EventConnected, EventListening, EventInactivityTimeout, EventError, EventDisconnected}
	if !slices.Equal(kinds(events), want) {
		t.Fatalf("expected events %v, got %v", want, kinds(events))
	}
	if !errors.Is(events[2].Err, ErrInactivityTimeout) || events[2].Err != events[3].Err {
		t.Fatalf("expected the same inactivity error twice, got %v and %v", events[2].Err, events[3].Err)
	}
	if err := session.Wait(); !errors.Is(err, ErrInactivityTimeout) {
		t.Fatalf("expected inactivity error from Wait, got %v", err)
	}
}

func TestRecognizeUsingWebSocketPreconditions(t *testing.T) {
	t.Parallel()

	var handshakes atomic.Int32
	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		handshakes.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	audio := strings.NewReader("x")
	valid := NewRecognizeWebSocketOptions("audio/wav")
	keywords := NewRecognizeWebSocketOptions("audio/wav")
	keywords.Keywords = []string{"storm"}

	cases := []struct {
		name     string
		audio    io.Reader
		opts     *RecognizeWebSocketOptions
		callback RecognizeCallback
		field    string
	}{
		{"nil audio", nil, valid, BaseRecognizeCallback{}, "audio"},
		{"nil callback", audio, valid, nil, "callback"},
		{"nil options", audio, nil, BaseRecognizeCallback{}, "options"},
		{"missing content type", audio, NewRecognizeWebSocketOptions(""), BaseRecognizeCallback{}, "content_type"},
		{"negative chunk size", audio, NewRecognizeWebSocketOptions("audio/wav").SetChunkSize(-1), BaseRecognizeCallback{}, "chunk_size"},
		{"keywords without threshold", audio, keywords, BaseRecognizeCallback{}, "keywords_threshold"},
	}

	for _, tc := range cases {
		session, err := svc.RecognizeUsingWebSocket(context.Background(), tc.audio, tc.opts, tc.callback)
		var verr *core.ValidationError
		if !errors.As(err, &verr) || verr.Field != tc.field {
			t.Fatalf("%s: expected %s validation error, got %v", tc.name, tc.field, err)
		}
		if session != nil {
			t.Fatalf("%s: expected no session", tc.name)
		}
	}
	if n := handshakes.Load(); n != 0 {
		t.Fatalf("expected no handshake, got %d", n)
	}
}

func TestRecognizeUsingWebSocketHandshakeFailure(t *testing.T) {
	t.Parallel()

	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"error":"Unauthorized"}`)
	})

	cb := NewChannelCallback(0)
	session, err := svc.RecognizeUsingWebSocket(context.Background(), strings.NewReader("x"),
		NewRecognizeWebSocketOptions("audio/wav"), cb)
	if err == nil || session != nil {
		t.Fatalf("expected handshake error, got %v", err)
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Fatalf("expected status in error, got %v", err)
	}

	events := collect(t, cb)
	want := []EventKind{EventError, EventDisconnected}
	if !slices.Equal(kinds(events), want) {
		t.Fatalf("expected events %v, got %v", want, kinds(events))
	}
	if events[0].Err.Error() != err.Error() {
		t.Fatalf("callback saw %v, caller saw %v", events[0].Err, err)
	}
}

func TestRecognitionSessionClose(t *testing.T) {
	t.Parallel()

	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		conn := upgrade(t, w, r)
		if conn == nil {
			return
		}
		defer conn.Close()

		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		sendText(conn, `{"state":"listening"}`)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	cb := NewChannelCallback(16)
	session, err := svc.RecognizeUsingWebSocket(context.Background(), pr,
		NewRecognizeWebSocketOptions("audio/ogg"), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for ev := range cb.Events() {
		if ev.Kind == EventListening {
			break
		}
	}
	if err := session.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}

	events := collect(t, cb)
	if !slices.Equal(kinds(events), []EventKind{EventDisconnected}) {
		t.Fatalf("expected only a disconnect after close, got %v", kinds(events))
	}
	if err := session.Wait(); err != nil {
		t.Fatalf("expected clean close, got %v", err)
	}
}

func TestRecognitionSessionContextCancel(t *testing.T) {
	t.Parallel()

	svc := newWebSocketService(t, func(w http.ResponseWriter, r *http.Request) {
		conn := upgrade(t, w, r)
		if conn == nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cb := NewChannelCallback(16)
	session, err := svc.RecognizeUsingWebSocket(ctx, pr, NewRecognizeWebSocketOptions("audio/mp3"), cb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	events := collect(t, cb)
	if slices.Contains(kinds(events), EventError) {
		t.Fatalf("cancellation must not be reported as an error event: %v", kinds(events))
	}
	if err := session.Wait(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBuildRecognizeURL(t *testing.T) {
	t.Parallel()

	full := NewRecognizeWebSocketOptions("audio/wav")
	full.Model = core.StringPtr("en-US_NarrowbandModel")
	full.CustomizationID = core.StringPtr("lang-1")
	full.AcousticCustomizationID = core.StringPtr("ac-1")
	full.BaseModelVersion = core.StringPtr("2018-01-01")
	full.CustomizationWeight = core.Float64Ptr(0.3)

	cases := []struct {
		name    string
		service string
		opts    *RecognizeWebSocketOptions
		want    string
	}{
		{
			"https becomes wss",
			"https://stream.watsonplatform.net/speech-to-text/api",
			NewRecognizeWebSocketOptions("audio/wav"),
			"wss://stream.watsonplatform.net/speech-to-text/api/v1/recognize",
		},
		{
			"http becomes ws and trailing slash is dropped",
			"http://localhost:8080/stt/",
			NewRecognizeWebSocketOptions("audio/wav"),
			"ws://localhost:8080/stt/v1/recognize",
		},
		{
			"url parameters",
			"https://example.test/api",
			full,
			"wss://example.test/api/v1/recognize?acoustic_customization_id=ac-1&customization_id=lang-1&customization_weight=0.3&model=en-US_NarrowbandModel&version=2018-01-01",
		},
	}

	for _, tc := range cases {
		got, err := buildRecognizeURL(tc.service, tc.opts)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}

	if _, err := buildRecognizeURL("ftp://example.test", full); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestRecognitionErrorInactivity(t *testing.T) {
	t.Parallel()

	err := error(&RecognitionError{Message: "Session timed out due to INACTIVITY"})
	if !errors.Is(err, ErrInactivityTimeout) {
		t.Fatal("expected inactivity match")
	}
	if errors.Is(&RecognitionError{Message: "bad audio"}, ErrInactivityTimeout) {
		t.Fatal("unexpected inactivity match")
	}
	if StateClosing.String() != "closing" || EventTranscriptionComplete.String() != "transcription_complete" {
		t.Fatal("unexpected names")
	}
}

func TestSessionErrorBookkeeping(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("failed to read recognition event: %w", &websocket.CloseError{Code: websocket.CloseNormalClosure})
	if !isNormalClose(wrapped) {
		t.Fatal("expected wrapped normal close to be recognized")
	}
	if isNormalClose(&websocket.CloseError{Code: websocket.CloseInternalServerErr}) {
		t.Fatal("server error close is not normal")
	}

	s := newRecognitionSession("", BaseRecognizeCallback{}, logger.NewNop(), 0)
	if _, err := uuid.Parse(s.ID()); err != nil {
		t.Fatalf("expected generated uuid, got %q", s.ID())
	}
	if s.chunkSize != audio.DefaultChunkSize {
		t.Fatalf("expected default chunk size, got %d", s.chunkSize)
	}
	first := errors.New("first")
	if !s.setErr(first) || s.setErr(errors.New("second")) {
		t.Fatal("expected only the first error to be kept")
	}
	if s.waitErr() != first {
		t.Fatalf("expected first error, got %v", s.waitErr())
	}

	s.setState(StateClosing)
	s.setState(StateOpen)
	if s.State() != StateClosing {
		t.Fatalf("state moved backwards to %s", s.State())
	}
}
