package main

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/multierr"

	"github.com/yegors/watson-go/internal/storage/sqlite"
	"github.com/yegors/watson-go/pkg/logger"
	"github.com/yegors/watson-go/pkg/speechtotext"
)

// transcriptStore is the part of the sqlite storage the printer needs
type transcriptStore interface {
	StoreTranscript(record *sqlite.TranscriptRecord) (int64, error)
}

// transcriptPrinter prints results as they arrive and stores final ones
type transcriptPrinter struct {
	speechtotext.BaseRecognizeCallback

	out       io.Writer
	store     transcriptStore
	logger    *logger.Logger
	sessionID string
	interim   bool
	model     string
	source    string

	mu    sync.Mutex
	count int
	errs  error
}

func newTranscriptPrinter(out io.Writer, store transcriptStore, log *logger.Logger, sessionID string, interim bool) *transcriptPrinter {
	return &transcriptPrinter{
		out:       out,
		store:     store,
		logger:    log.Named("printer").WithSession(sessionID),
		interim:   interim,
		sessionID: sessionID,
	}
}

func (p *transcriptPrinter) stored() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *transcriptPrinter) err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs
}

func (p *transcriptPrinter) OnListening() {
	p.logger.Debug("Service is listening")
}

func (p *transcriptPrinter) OnTranscription(results *speechtotext.SpeechRecognitionResults) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var index int64
	if results.ResultIndex != nil {
		index = *results.ResultIndex
	}
	for i, res := range results.Results {
		if len(res.Alternatives) == 0 {
			continue
		}
		best := res.Alternatives[0]
		if !res.Final {
			if p.interim {
				fmt.Fprintf(p.out, "... %s\n", best.Transcript)
			}
			continue
		}
		fmt.Fprintf(p.out, "%s\n", best.Transcript)

		record := &sqlite.TranscriptRecord{
			SessionID:   p.sessionID,
			ResultIndex: index + int64(i),
			Transcript:  best.Transcript,
			Confidence:  best.Confidence,
			Model:       p.model,
			Source:      p.source,
		}
		if _, err := p.store.StoreTranscript(record); err != nil {
			p.logger.Error("Failed to store transcript", logger.Error(err))
			p.errs = multierr.Append(p.errs, err)
			continue
		}
		p.count++
	}
}

func (p *transcriptPrinter) OnInactivityTimeout(err error) {
	p.logger.Warn("No speech detected before the inactivity timeout", logger.Error(err))
}

func (p *transcriptPrinter) OnError(err error) {
	p.logger.Error("Recognition failed", logger.Error(err))
}
