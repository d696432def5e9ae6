package speechtotext

import (
	"errors"
	"strings"
)

// RecognizeCallback receives the events of a streaming recognition. Methods
// are never invoked concurrently for one session. Nothing but OnDisconnected
// follows OnError.
type RecognizeCallback interface {
	// OnConnected fires once the websocket handshake completed
	OnConnected()
	// OnListening fires when the service is ready for audio
	OnListening()
	OnTranscription(results *SpeechRecognitionResults)
	// OnTranscriptionComplete fires after the final results of the stream
	OnTranscriptionComplete()
	// OnInactivityTimeout precedes OnError when the service gave up waiting
	// for speech
	OnInactivityTimeout(err error)
	OnError(err error)
	// OnDisconnected is always the last event of a session
	OnDisconnected()
}

// BaseRecognizeCallback implements every method as a no-op; embed it to
// override only the events of interest.
type BaseRecognizeCallback struct{}

func (BaseRecognizeCallback) OnConnected()                              {}
func (BaseRecognizeCallback) OnListening()                              {}
func (BaseRecognizeCallback) OnTranscription(*SpeechRecognitionResults) {}
func (BaseRecognizeCallback) OnTranscriptionComplete()                  {}
func (BaseRecognizeCallback) OnInactivityTimeout(error)                 {}
func (BaseRecognizeCallback) OnError(error)                             {}
func (BaseRecognizeCallback) OnDisconnected()                           {}

// ErrInactivityTimeout matches recognition errors caused by silence
var ErrInactivityTimeout = errors.New("inactivity timeout")

// RecognitionError is an error frame sent by the service
type RecognitionError struct {
	Message string
}

func (e *RecognitionError) Error() string {
	return "recognition failed: " + e.Message
}

// Inactivity reports whether the service closed the stream for lack of speech
func (e *RecognitionError) Inactivity() bool {
	return strings.Contains(strings.ToLower(e.Message), "inactivity")
}

func (e *RecognitionError) Is(target error) bool {
	return target == ErrInactivityTimeout && e.Inactivity()
}

// EventKind tags a RecognitionEvent
type EventKind int

const (
	EventConnected EventKind = iota
	EventListening
	EventTranscription
	EventTranscriptionComplete
	EventInactivityTimeout
	EventError
	EventDisconnected
)

func (k EventKind) String() string {
	switch k {
	case EventConnected:
		return "connected"
	case EventListening:
		return "listening"
	case EventTranscription:
		return "transcription"
	case EventTranscriptionComplete:
		return "transcription_complete"
	case EventInactivityTimeout:
		return "inactivity_timeout"
	case EventError:
		return "error"
	case EventDisconnected:
		return "disconnected"
	}
	return "unknown"
}

// RecognitionEvent is one callback invocation delivered over a channel.
// Results is set for EventTranscription, Err for EventError and
// EventInactivityTimeout.
type RecognitionEvent struct {
	Kind    EventKind
	Results *SpeechRecognitionResults
	Err     error
}

// ChannelCallback turns callbacks into a stream of events. The channel is
// closed after EventDisconnected. The consumer must drain it: a full channel
// stalls the session's reader, which in turn slows the service down.
type ChannelCallback struct {
	events chan RecognitionEvent
}

func NewChannelCallback(buffer int) *ChannelCallback {
	if buffer < 0 {
		buffer = 0
	}
	return &ChannelCallback{events: make(chan RecognitionEvent, buffer)}
}

func (c *ChannelCallback) Events() <-chan RecognitionEvent {
	return c.events
}

func (c *ChannelCallback) OnConnected() {
	c.events <- RecognitionEvent{Kind: EventConnected}
}

func (c *ChannelCallback) OnListening() {
	c.events <- RecognitionEvent{Kind: EventListening}
}

func (c *ChannelCallback) OnTranscription(results *SpeechRecognitionResults) {
	c.events <- RecognitionEvent{Kind: EventTranscription, Results: results}
}

func (c *ChannelCallback) OnTranscriptionComplete() {
	c.events <- RecognitionEvent{Kind: EventTranscriptionComplete}
}

func (c *ChannelCallback) OnInactivityTimeout(err error) {
	c.events <- RecognitionEvent{Kind: EventInactivityTimeout, Err: err}
}

func (c *ChannelCallback) OnError(err error) {
	c.events <- RecognitionEvent{Kind: EventError, Err: err}
}

func (c *ChannelCallback) OnDisconnected() {
	c.events <- RecognitionEvent{Kind: EventDisconnected}
	close(c.events)
}
