package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/yegors/watson-go/internal/config"
	"github.com/yegors/watson-go/internal/storage/sqlite"
	"github.com/yegors/watson-go/pkg/logger"
	"github.com/yegors/watson-go/pkg/speechtotext"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "watson-stt: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	file        string
	contentType string
	model       string
	interim     bool
	interimSet  bool
	chunkMs     int
	dbPath      string
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("watson-stt", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&f.file, "file", "", "audio file to transcribe (required)")
	fs.StringVar(&f.contentType, "content-type", "", "content type of the audio, detected when empty")
	fs.StringVar(&f.model, "model", "", "recognition model, overrides [streaming] model")
	fs.BoolVar(&f.interim, "interim", true, "print interim results, overrides [streaming] interim_results")
	fs.IntVar(&f.chunkMs, "chunk-ms", 0, "duration of each PCM audio frame, overrides [streaming] chunk_ms")
	fs.StringVar(&f.dbPath, "db", "", "sqlite database for final transcripts, overrides [storage] path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "interim" {
			f.interimSet = true
		}
	})
	if f.file == "" {
		return nil, errors.New("-file is required")
	}
	if f.chunkMs < 0 {
		return nil, fmt.Errorf("-chunk-ms must not be negative, got %d", f.chunkMs)
	}
	return f, nil
}

// apply overrides the config with the flags given on the command line
func (f *flags) apply(cfg *config.Config) {
	if f.model != "" {
		cfg.Streaming.Model = f.model
	}
	if f.interimSet {
		cfg.Streaming.InterimResults = f.interim
	}
	if f.chunkMs > 0 {
		cfg.Streaming.ChunkMs = f.chunkMs
	}
	if f.dbPath != "" {
		cfg.Storage.Path = f.dbPath
	}
}

func run(args []string, stdout io.Writer) (err error) {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg)

	log, err := logger.New(cfg.Logging.LoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	svc, err := speechtotext.NewService(&speechtotext.Options{
		ServiceOptions: cfg.SpeechToText.ServiceOptions(log),
	})
	if err != nil {
		return fmt.Errorf("failed to create speech to text client: %w", err)
	}

	store, err := sqlite.Open(cfg.Storage.Path, log)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, store.Close()) }()

	file, err := os.Open(f.file)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	source, err := prepareSource(file, f.contentType, cfg.Streaming)
	if err != nil {
		return err
	}
	log.Info("Streaming audio",
		logger.String("file", f.file),
		logger.String("content_type", source.contentType),
		logger.Int("chunk_size", source.chunkSize))

	sessionID := uuid.NewString()
	opts := speechtotext.NewRecognizeWebSocketOptions(source.contentType).
		SetSessionID(sessionID).
		SetInterimResults(cfg.Streaming.InterimResults).
		SetChunkSize(source.chunkSize).
		SetTimestamps(true).
		SetWordConfidence(true)
	if cfg.Streaming.Model != "" {
		opts.SetModel(cfg.Streaming.Model)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer := newTranscriptPrinter(stdout, store, log, sessionID, cfg.Streaming.InterimResults)
	printer.model = cfg.Streaming.Model
	printer.source = filepath.Base(f.file)

	started := time.Now()
	session, err := svc.RecognizeUsingWebSocket(ctx, source.reader, opts, printer)
	if err != nil {
		return err
	}

	waitErr := session.Wait()
	fmt.Fprintf(stdout, "\nsession %s: sent %s in %s chunks, %d final results stored, took %s\n",
		session.ID(),
		humanize.Bytes(uint64(session.BytesSent())),
		humanize.Comma(session.ChunksSent()),
		printer.stored(),
		time.Since(started).Round(time.Millisecond))

	return multierr.Combine(waitErr, printer.err())
}
