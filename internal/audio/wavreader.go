package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strconv"
)

const wavHeaderSize = 44

// Content types understood by the recognizer
const (
	ContentTypeWAV  = "audio/wav"
	ContentTypeFLAC = "audio/flac"
	ContentTypeOgg  = "audio/ogg"
	ContentTypeMP3  = "audio/mp3"
	ContentTypeL16  = "audio/l16"
)

// WAVFormat is the subset of a RIFF header the client cares about
type WAVFormat struct {
	AudioFormat   uint16 // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	BitsPerSample uint16
}

// WAVReader wraps raw PCM16 and prepends a streaming WAV header
type WAVReader struct {
	reader io.Reader
	header *bytes.Reader
}

// NewWAVReader creates a reader producing audio/wav from raw PCM16
func NewWAVReader(reader io.Reader, sampleRate, channels int) *WAVReader {
	return &WAVReader{
		reader: reader,
		header: bytes.NewReader(EncodeWAVHeader(sampleRate, channels)),
	}
}

// EncodeWAVHeader builds a 44-byte PCM16 header. The data size is unknown
// while streaming, so the maximum is used.
func EncodeWAVHeader(sampleRate, channels int) []byte {
	const bitsPerSample = 16
	dataSize := uint32(0xFFFFFFFF - 36)

	h := make([]byte, wavHeaderSize)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate*channels*bitsPerSample/8))
	binary.LittleEndian.PutUint16(h[32:34], uint16(channels*bitsPerSample/8))
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)
	return h
}

// Read emits the header first, then the wrapped PCM
func (wr *WAVReader) Read(p []byte) (int, error) {
	if wr.header.Len() > 0 {
		return wr.header.Read(p)
	}
	return wr.reader.Read(p)
}

// Close closes the wrapped reader when it is an io.Closer
func (wr *WAVReader) Close() error {
	if c, ok := wr.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var errNotWAV = errors.New("not a RIFF/WAVE header")

// ParseWAVHeader reads the fmt chunk of a canonical 44-byte header
func ParseWAVHeader(h []byte) (WAVFormat, error) {
	if len(h) < wavHeaderSize || string(h[0:4]) != "RIFF" || string(h[8:12]) != "WAVE" || string(h[12:16]) != "fmt " {
		return WAVFormat{}, errNotWAV
	}
	return WAVFormat{
		AudioFormat:   binary.LittleEndian.Uint16(h[20:22]),
		NumChannels:   binary.LittleEndian.Uint16(h[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(h[24:28]),
		BitsPerSample: binary.LittleEndian.Uint16(h[34:36]),
	}, nil
}

// DetectContentType sniffs the container from its magic bytes. An empty
// string means the header is not recognized.
func DetectContentType(header []byte) string {
	switch {
	case len(header) >= 12 && string(header[0:4]) == "RIFF" && string(header[8:12]) == "WAVE":
		return ContentTypeWAV
	case bytes.HasPrefix(header, []byte("fLaC")):
		return ContentTypeFLAC
	case bytes.HasPrefix(header, []byte("OggS")):
		return ContentTypeOgg
	case bytes.HasPrefix(header, []byte("ID3")), len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0:
		return ContentTypeMP3
	}
	return ""
}

// L16ContentType formats the content type of raw PCM16
func L16ContentType(sampleRate, channels int) string {
	return ContentTypeL16 + ";rate=" + strconv.Itoa(sampleRate) + ";channels=" + strconv.Itoa(channels)
}
