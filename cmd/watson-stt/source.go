package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yegors/watson-go/internal/audio"
	"github.com/yegors/watson-go/internal/config"
)

// audioSource is what gets streamed, with the framing that suits it
type audioSource struct {
	reader      io.Reader
	contentType string
	chunkSize   int
}

// prepareSource sniffs the container of r. Containers are streamed as they
// are; raw PCM16 either gets a WAV header or is labelled audio/l16. PCM
// frames last cfg.ChunkMs, compressed audio uses the default frame size.
func prepareSource(r io.Reader, forced string, cfg config.StreamingConfig) (*audioSource, error) {
	br := bufio.NewReaderSize(r, 64)
	head, err := br.Peek(44)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read audio header: %w", err)
	}
	if len(head) == 0 {
		return nil, errors.New("audio file is empty")
	}

	detected := audio.DetectContentType(head)
	src := &audioSource{reader: br, contentType: detected, chunkSize: audio.DefaultChunkSize}

	switch detected {
	case audio.ContentTypeWAV:
		if format, err := audio.ParseWAVHeader(head); err == nil && format.BitsPerSample == 16 {
			src.chunkSize = audio.ChunkSizeForDuration(int(format.SampleRate), int(format.NumChannels), cfg.ChunkMs)
		}
	case "":
		chunker, err := audio.NewChunker(cfg.SampleRate, cfg.Channels, cfg.ChunkMs)
		if err != nil {
			return nil, err
		}
		src.chunkSize = chunker.ChunkSize()

		want := forced
		if want == "" {
			want = cfg.ContentType
		}
		switch {
		case strings.HasPrefix(want, audio.ContentTypeWAV):
			src.reader = audio.NewWAVReader(br, cfg.SampleRate, cfg.Channels)
			src.contentType = audio.ContentTypeWAV
		case forced != "":
			src.contentType = forced
		default:
			src.contentType = audio.L16ContentType(cfg.SampleRate, cfg.Channels)
		}
	}

	if forced != "" && detected != "" {
		src.contentType = forced
	}
	return src, nil
}
