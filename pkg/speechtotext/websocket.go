package speechtotext

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/yegors/watson-go/internal/audio"
	"github.com/yegors/watson-go/pkg/core"
	"github.com/yegors/watson-go/pkg/logger"
)

// RecognizeWebSocketOptions configures RecognizeUsingWebSocket. Model,
// customization ids, BaseModelVersion and CustomizationWeight travel in the
// connection URL; the other parameters go in the start message.
type RecognizeWebSocketOptions struct {
	RecognitionParams
	ContentType    string
	InterimResults *bool
	// ChunkSize is the size of each binary audio frame, 4096 bytes by default
	ChunkSize int
	// SessionID names the session in logs; a random UUID when empty
	SessionID string
	Headers   http.Header
}

func NewRecognizeWebSocketOptions(contentType string) *RecognizeWebSocketOptions {
	return &RecognizeWebSocketOptions{ContentType: contentType}
}

func (o *RecognizeWebSocketOptions) SetModel(model string) *RecognizeWebSocketOptions {
	o.Model = core.StringPtr(model)
	return o
}

func (o *RecognizeWebSocketOptions) SetCustomizationID(id string) *RecognizeWebSocketOptions {
	o.CustomizationID = core.StringPtr(id)
	return o
}

func (o *RecognizeWebSocketOptions) SetInterimResults(v bool) *RecognizeWebSocketOptions {
	o.InterimResults = core.BoolPtr(v)
	return o
}

func (o *RecognizeWebSocketOptions) SetTimestamps(v bool) *RecognizeWebSocketOptions {
	o.Timestamps = core.BoolPtr(v)
	return o
}

func (o *RecognizeWebSocketOptions) SetWordConfidence(v bool) *RecognizeWebSocketOptions {
	o.WordConfidence = core.BoolPtr(v)
	return o
}

func (o *RecognizeWebSocketOptions) SetInactivityTimeout(seconds int64) *RecognizeWebSocketOptions {
	o.InactivityTimeout = core.Int64Ptr(seconds)
	return o
}

func (o *RecognizeWebSocketOptions) SetSpeakerLabels(v bool) *RecognizeWebSocketOptions {
	o.SpeakerLabels = core.BoolPtr(v)
	return o
}

func (o *RecognizeWebSocketOptions) SetChunkSize(size int) *RecognizeWebSocketOptions {
	o.ChunkSize = size
	return o
}

func (o *RecognizeWebSocketOptions) SetSessionID(id string) *RecognizeWebSocketOptions {
	o.SessionID = id
	return o
}

func (o *RecognizeWebSocketOptions) Validate() error {
	if err := requireOptions(o != nil); err != nil {
		return err
	}
	if err := core.RequireString("content_type", o.ContentType); err != nil {
		return err
	}
	if o.ChunkSize < 0 {
		return &core.ValidationError{Field: "chunk_size", Reason: "must not be negative"}
	}
	return o.RecognitionParams.validate()
}

// SessionState is the lifecycle of a RecognitionSession. It only moves
// forward.
type SessionState int32

const (
	StateCreated SessionState = iota
	StateConnecting
	StateOpen
	StateClosing
	StateClosed
)

func (s SessionState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

type startMessage struct {
	Action                    string   `json:"action"`
	ContentType               string   `json:"content-type"`
	InterimResults            *bool    `json:"interim_results,omitempty"`
	Timestamps                *bool    `json:"timestamps,omitempty"`
	WordConfidence            *bool    `json:"word_confidence,omitempty"`
	MaxAlternatives           *int64   `json:"max_alternatives,omitempty"`
	Keywords                  []string `json:"keywords,omitempty"`
	KeywordsThreshold         *float64 `json:"keywords_threshold,omitempty"`
	WordAlternativesThreshold *float64 `json:"word_alternatives_threshold,omitempty"`
	InactivityTimeout         *int64   `json:"inactivity_timeout,omitempty"`
	ProfanityFilter           *bool    `json:"profanity_filter,omitempty"`
	SmartFormatting           *bool    `json:"smart_formatting,omitempty"`
	SpeakerLabels             *bool    `json:"speaker_labels,omitempty"`
}

var stopMessage = []byte(`{"action":"stop"}`)

func newStartMessage(opts *RecognizeWebSocketOptions) ([]byte, error) {
	data, err := json.Marshal(startMessage{
		Action:                    "start",
		ContentType:               opts.ContentType,
		InterimResults:            opts.InterimResults,
		Timestamps:                opts.Timestamps,
		WordConfidence:            opts.WordConfidence,
		MaxAlternatives:           opts.MaxAlternatives,
		Keywords:                  opts.Keywords,
		KeywordsThreshold:         opts.KeywordsThreshold,
		WordAlternativesThreshold: opts.WordAlternativesThreshold,
		InactivityTimeout:         opts.InactivityTimeout,
		ProfanityFilter:           opts.ProfanityFilter,
		SmartFormatting:           opts.SmartFormatting,
		SpeakerLabels:             opts.SpeakerLabels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode start message: %w", err)
	}
	return data, nil
}

// buildRecognizeURL rewrites the service URL to the websocket endpoint
func buildRecognizeURL(serviceURL string, opts *RecognizeWebSocketOptions) (string, error) {
	u, err := url.Parse(strings.TrimSpace(serviceURL))
	if err != nil {
		return "", fmt.Errorf("invalid service URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported service URL scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/v1/recognize"

	query := url.Values{}
	setIf := func(name string, v *string) {
		if v != nil {
			query.Set(name, *v)
		}
	}
	setIf("model", opts.Model)
	setIf("customization_id", opts.CustomizationID)
	setIf("acoustic_customization_id", opts.AcousticCustomizationID)
	setIf("version", opts.BaseModelVersion)
	if opts.CustomizationWeight != nil {
		query.Set("customization_weight", strconv.FormatFloat(*opts.CustomizationWeight, 'f', -1, 64))
	}
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// RecognizeUsingWebSocket streams audio to the service and reports events
// to callback. It returns once the connection is open; use the session to
// wait for the end of the stream or to abort it. src is read until EOF,
// after which the stop message is sent.
//
// Callbacks run on the session's reader goroutine, never on the caller's.
// When the handshake fails the error is returned and callback still
// receives OnError followed by OnDisconnected.
func (s *Service) RecognizeUsingWebSocket(ctx context.Context, src io.Reader, opts *RecognizeWebSocketOptions, callback RecognizeCallback) (*RecognitionSession, error) {
	if err := core.RequireNotNil("audio", src != nil); err != nil {
		return nil, err
	}
	if err := core.RequireNotNil("callback", callback != nil); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	wsURL, err := buildRecognizeURL(s.base.ServiceURL(), opts)
	if err != nil {
		return nil, err
	}
	headers, err := s.base.PrepareHeaders(wsURL, opts.Headers)
	if err != nil {
		return nil, err
	}
	start, err := newStartMessage(opts)
	if err != nil {
		return nil, err
	}

	session := newRecognitionSession(opts.SessionID, callback, s.logger, opts.ChunkSize)
	session.setState(StateConnecting)

	conn, resp, err := s.dialer.DialContext(ctx, wsURL, headers)
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("failed to connect to recognize websocket (status %d): %w", resp.StatusCode, err)
		} else {
			err = fmt.Errorf("failed to connect to recognize websocket: %w", err)
		}
		session.setState(StateClosed)
		session.logger.Warn("Recognition handshake failed", logger.Error(err))
		go func() {
			callback.OnError(err)
			callback.OnDisconnected()
		}()
		return nil, err
	}
	session.conn = conn
	session.setState(StateOpen)
	session.logger.Debug("Recognition session opened", logger.String("url", wsURL))

	go func() {
		session.dispatch(func(cb RecognizeCallback) { cb.OnConnected() })
		go session.writeLoop(src, start)
		session.readLoop()
		session.finish()
	}()
	go func() {
		select {
		case <-ctx.Done():
			session.setErr(ctx.Err())
			_ = session.Close()
		case <-session.done:
		}
	}()

	return session, nil
}

// RecognitionSession is one streaming recognition
type RecognitionSession struct {
	id        string
	conn      *websocket.Conn
	callback  RecognizeCallback
	logger    *logger.Logger
	chunkSize int

	state atomic.Int32
	done  chan struct{}

	errMu sync.Mutex
	err   error

	// dispatchMu serializes callbacks; failed and disconnected gate them
	dispatchMu   sync.Mutex
	failed       bool
	disconnected bool
	listening    bool

	writeMu  sync.Mutex
	stopSent bool

	closeRequested atomic.Bool
	closeOnce      sync.Once

	bytesSent  atomic.Int64
	chunksSent atomic.Int64
}

func newRecognitionSession(id string, callback RecognizeCallback, log *logger.Logger, chunkSize int) *RecognitionSession {
	if chunkSize <= 0 {
		chunkSize = audio.DefaultChunkSize
	}
	if id == "" {
		id = uuid.NewString()
	}
	return &RecognitionSession{
		id:        id,
		callback:  callback,
		logger:    log.WithSession(id),
		chunkSize: chunkSize,
		done:      make(chan struct{}),
	}
}

// ID identifies the session in logs and stored transcripts
func (s *RecognitionSession) ID() string { return s.id }

func (s *RecognitionSession) State() SessionState {
	return SessionState(s.state.Load())
}

// BytesSent is the amount of audio written so far
func (s *RecognitionSession) BytesSent() int64 { return s.bytesSent.Load() }

func (s *RecognitionSession) ChunksSent() int64 { return s.chunksSent.Load() }

// Done is closed when the session reached StateClosed
func (s *RecognitionSession) Done() <-chan struct{} { return s.done }

// Wait blocks until the session is closed and returns its first error
func (s *RecognitionSession) Wait() error {
	<-s.done
	return s.waitErr()
}

// Close aborts the session by closing the connection. It does not wait;
// call Wait for that. Closing an aborted session is not an error.
func (s *RecognitionSession) Close() error {
	s.closeRequested.Store(true)
	s.setState(StateClosing)
	s.closeConn()
	return nil
}

// setState moves the state forward only
func (s *RecognitionSession) setState(next SessionState) {
	for {
		cur := s.state.Load()
		if SessionState(cur) >= next {
			return
		}
		if s.state.CompareAndSwap(cur, int32(next)) {
			return
		}
	}
}

func (s *RecognitionSession) waitErr() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.err
}

func isNormalClose(err error) bool {
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) {
		return false
	}
	switch closeErr.Code {
	case websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived:
		return true
	}
	return false
}

func (s *RecognitionSession) setErr(err error) bool {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	if s.err != nil {
		return false
	}
	s.err = err
	return true
}

// fail records err, reports it once and tears the connection down. Errors
// caused by our own close are dropped.
func (s *RecognitionSession) fail(err error) {
	if err == nil || isNormalClose(err) || s.closeRequested.Load() {
		return
	}
	if !s.setErr(err) {
		return
	}
	s.setState(StateClosing)

	s.dispatchMu.Lock()
	if !s.failed && !s.disconnected {
		s.failed = true
		var rerr *RecognitionError
		if errors.As(err, &rerr) && rerr.Inactivity() {
			s.callback.OnInactivityTimeout(err)
		}
		s.callback.OnError(err)
	}
	s.dispatchMu.Unlock()

	s.logger.Warn("Recognition session failed", logger.Error(err))
	s.closeConn()
}

func (s *RecognitionSession) dispatch(fn func(RecognizeCallback)) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()
	if s.failed || s.disconnected {
		return
	}
	fn(s.callback)
}

func (s *RecognitionSession) closeConn() {
	if s.conn == nil {
		return
	}
	s.closeOnce.Do(func() {
		deadline := time.Now().Add(time.Second)
		_ = s.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		_ = s.conn.Close()
	})
}

// finish runs once the reader has stopped. Errors from the writer after
// this point are not reported.
func (s *RecognitionSession) finish() {
	s.closeRequested.Store(true)
	s.closeConn()
	s.setState(StateClosed)

	s.dispatchMu.Lock()
	s.disconnected = true
	s.callback.OnDisconnected()
	s.dispatchMu.Unlock()

	s.logger.Debug("Recognition session closed",
		logger.Int64("bytes_sent", s.bytesSent.Load()),
		logger.Int64("chunks_sent", s.chunksSent.Load()))
	close(s.done)
}

// writeMessage refuses to write anything once the stop message went out
func (s *RecognitionSession) writeMessage(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.stopSent {
		return errors.New("audio stream already stopped")
	}
	return s.conn.WriteMessage(messageType, data)
}

func (s *RecognitionSession) sendStop() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.stopSent {
		return nil
	}
	s.stopSent = true
	s.setState(StateClosing)
	return s.conn.WriteMessage(websocket.TextMessage, stopMessage)
}

func (s *RecognitionSession) writeLoop(src io.Reader, start []byte) {
	if err := s.writeMessage(websocket.TextMessage, start); err != nil {
		s.fail(fmt.Errorf("failed to send start message: %w", err))
		return
	}

	chunks := audio.NewChunkReader(src, s.chunkSize)
	for s.State() == StateOpen {
		chunk, err := chunks.Next()
		if errors.Is(err, io.EOF) {
			if err := s.sendStop(); err != nil {
				s.fail(fmt.Errorf("failed to send stop message: %w", err))
			}
			return
		}
		if err != nil {
			s.fail(fmt.Errorf("failed to read audio: %w", err))
			return
		}
		if err := s.writeMessage(websocket.BinaryMessage, chunk); err != nil {
			s.fail(fmt.Errorf("failed to send audio: %w", err))
			return
		}
		s.bytesSent.Add(int64(len(chunk)))
		s.chunksSent.Add(1)
	}
}

func (s *RecognitionSession) readLoop() {
	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(fmt.Errorf("failed to read recognition event: %w", err))
			return
		}
		if !s.handleFrame(payload) {
			return
		}
	}
}

// handleFrame dispatches one inbound frame and reports whether reading
// should continue
func (s *RecognitionSession) handleFrame(payload []byte) bool {
	if !gjson.ValidBytes(payload) {
		s.logger.Debug("Skipping unparseable frame", logger.Int("size", len(payload)))
		return true
	}
	frame := gjson.ParseBytes(payload)

	if e := frame.Get("error"); e.Exists() {
		s.fail(&RecognitionError{Message: e.String()})
		return false
	}

	if frame.Get("state").String() == "listening" {
		s.dispatchMu.Lock()
		second := s.listening
		s.listening = true
		s.dispatchMu.Unlock()

		if !second {
			s.dispatch(func(cb RecognizeCallback) { cb.OnListening() })
			return true
		}
		// The service listens again once the final results of the stream
		// have been delivered.
		s.closeRequested.Store(true)
		s.setState(StateClosing)
		s.dispatch(func(cb RecognizeCallback) { cb.OnTranscriptionComplete() })
		return false
	}

	// speaker labels may arrive in frames of their own
	if frame.Get("results").Exists() || frame.Get("speaker_labels").Exists() {
		var results SpeechRecognitionResults
		if err := json.Unmarshal(payload, &results); err != nil {
			s.logger.Debug("Skipping malformed results frame", logger.Error(err))
			return true
		}
		s.dispatch(func(cb RecognizeCallback) { cb.OnTranscription(&results) })
		return true
	}

	s.logger.Debug("Skipping unknown frame", logger.String("frame", frame.Raw))
	return true
}
