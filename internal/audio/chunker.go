package audio

import (
	"errors"
	"fmt"
	"io"
)

// Chunker sizes fixed-duration frames of a PCM16 stream
type Chunker struct {
	chunkSizeMs int
	bytesPerMs  int
}

// NewChunker creates a chunker for PCM16 audio
func NewChunker(sampleRate, channels, chunkSizeMs int) (*Chunker, error) {
	if sampleRate <= 0 || channels <= 0 || chunkSizeMs <= 0 {
		return nil, fmt.Errorf("invalid chunker parameters: rate=%d channels=%d chunk=%dms", sampleRate, channels, chunkSizeMs)
	}
	// PCM16: 2 bytes per sample
	bytesPerMs := (sampleRate * channels * 2) / 1000
	if bytesPerMs == 0 {
		return nil, fmt.Errorf("sample rate %d is too low to chunk by milliseconds", sampleRate)
	}

	return &Chunker{
		chunkSizeMs: chunkSizeMs,
		bytesPerMs:  bytesPerMs,
	}, nil
}

// ChunkSize is the size in bytes of one full chunk
func (c *Chunker) ChunkSize() int {
	return c.chunkSizeMs * c.bytesPerMs
}

// DefaultChunkSize is used when no chunk size is configured
const DefaultChunkSize = 4096

// ChunkReader reads a source in fixed-size chunks. Each chunk returned by
// Next is a fresh slice the caller owns.
type ChunkReader struct {
	src  io.Reader
	buf  []byte
	done bool
}

func NewChunkReader(src io.Reader, size int) *ChunkReader {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &ChunkReader{src: src, buf: make([]byte, size)}
}

// Next returns the next chunk. The final chunk may be short; io.EOF follows it.
func (r *ChunkReader) Next() ([]byte, error) {
	if r.done {
		return nil, io.EOF
	}
	n, err := io.ReadFull(r.src, r.buf)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		r.done = true
		if n == 0 {
			return nil, io.EOF
		}
	default:
		return nil, err
	}
	return append([]byte(nil), r.buf[:n]...), nil
}

// ChunkSizeForDuration converts a chunk duration into bytes for PCM16 audio
func ChunkSizeForDuration(sampleRate, channels, chunkSizeMs int) int {
	c, err := NewChunker(sampleRate, channels, chunkSizeMs)
	if err != nil {
		return DefaultChunkSize
	}
	return c.ChunkSize()
}
