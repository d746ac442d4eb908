// Package wavio reads mono sample data from PCM WAV files for the command
// line tools. Multi-channel files are averaged down to one channel.
package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrNotRIFF      = errors.New("not a RIFF/WAVE file")
	ErrNoData       = errors.New("no data chunk found")
	ErrUnsupported  = errors.New("unsupported WAV encoding")
	errShortChunk   = errors.New("truncated chunk")
	errNoFormatInfo = errors.New("data chunk before fmt chunk")
)

type format struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// ReadFile reads a WAV file and returns mono samples in [-1, 1] and the
// sample rate in Hz.
func ReadFile(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return Read(f)
}

// Read decodes WAV data from r.
func Read(r io.Reader) ([]float64, float64, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return nil, 0, fmt.Errorf("wav header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return nil, 0, ErrNotRIFF
	}

	var fmtChunk *format
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, 0, ErrNoData
			}
			return nil, 0, err
		}
		id := string(hdr[0:4])
		size := binary.LittleEndian.Uint32(hdr[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, errShortChunk
			}
			if size < 16 {
				return nil, 0, errShortChunk
			}
			fmtChunk = &format{
				audioFormat:   binary.LittleEndian.Uint16(body[0:2]),
				channels:      binary.LittleEndian.Uint16(body[2:4]),
				sampleRate:    binary.LittleEndian.Uint32(body[4:8]),
				bitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
			}
		case "data":
			if fmtChunk == nil {
				return nil, 0, errNoFormatInfo
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return nil, 0, errShortChunk
			}
			samples, err := decodeSamples(body, fmtChunk)
			if err != nil {
				return nil, 0, err
			}
			return samples, float64(fmtChunk.sampleRate), nil
		default:
			// skip unknown chunks, padded to even size
			skip := int64(size)
			if size%2 == 1 {
				skip++
			}
			if _, err := io.CopyN(io.Discard, r, skip); err != nil {
				return nil, 0, errShortChunk
			}
		}
	}
}

func decodeSamples(body []byte, f *format) ([]float64, error) {
	if f.audioFormat != 1 || f.bitsPerSample != 16 {
		return nil, fmt.Errorf("%w: format %d, %d bits", ErrUnsupported, f.audioFormat, f.bitsPerSample)
	}
	if f.channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupported, f.channels)
	}

	ch := int(f.channels)
	frames := len(body) / (2 * ch)
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < ch; c++ {
			off := (i*ch + c) * 2
			v := int16(binary.LittleEndian.Uint16(body[off : off+2]))
			sum += float64(v) / 32768
		}
		out[i] = sum / float64(ch)
	}
	return out, nil
}
