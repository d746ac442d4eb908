package wavio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func encodeWAV(t *testing.T, rate uint32, channels uint16, samples []int16) []byte {
	t.Helper()

	var data bytes.Buffer
	for _, s := range samples {
		if err := binary.Write(&data, binary.LittleEndian, s); err != nil {
			t.Fatalf("encode sample: %v", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, channels)
	binary.Write(&buf, binary.LittleEndian, rate)
	binary.Write(&buf, binary.LittleEndian, rate*uint32(channels)*2)
	binary.Write(&buf, binary.LittleEndian, channels*2)
	binary.Write(&buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func TestReadMono(t *testing.T) {
	raw := encodeWAV(t, 44100, 1, []int16{0, 16384, -16384, 32767})
	samples, rate, err := Read(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if rate != 44100 {
		t.Errorf("rate = %v, want 44100", rate)
	}
	want := []float64{0, 0.5, -0.5, 32767.0 / 32768}
	if len(samples) != len(want) {
		t.Fatalf("got %d samples, want %d", len(samples), len(want))
	}
	for i, w := range want {
		if math.Abs(samples[i]-w) > 1e-9 {
			t.Errorf("samples[%d] = %v, want %v", i, samples[i], w)
		}
	}
}

func TestReadStereoAveraged(t *testing.T) {
	// interleaved L/R frames
	raw := encodeWAV(t, 22050, 2, []int16{16384, -16384, 8192, 8192})
	samples, rate, err := Read(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if rate != 22050 {
		t.Errorf("rate = %v, want 22050", rate)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if math.Abs(samples[0]) > 1e-9 {
		t.Errorf("samples[0] = %v, want 0", samples[0])
	}
	if math.Abs(samples[1]-0.25) > 1e-9 {
		t.Errorf("samples[1] = %v, want 0.25", samples[1])
	}
}

func TestSkipsUnknownChunks(t *testing.T) {
	raw := encodeWAV(t, 8000, 1, []int16{100})
	// splice a LIST chunk between fmt and data
	fmtEnd := 12 + 8 + 16
	var extra bytes.Buffer
	extra.WriteString("LIST")
	binary.Write(&extra, binary.LittleEndian, uint32(4))
	extra.WriteString("INFO")

	spliced := append([]byte{}, raw[:fmtEnd]...)
	spliced = append(spliced, extra.Bytes()...)
	spliced = append(spliced, raw[fmtEnd:]...)

	samples, _, err := Read(bytes.NewReader(spliced))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("got %d samples, want 1", len(samples))
	}
}

func TestRejectsNonRIFF(t *testing.T) {
	_, _, err := Read(bytes.NewReader([]byte("not a wav file at all")))
	if !errors.Is(err, ErrNotRIFF) {
		t.Errorf("err = %v, want ErrNotRIFF", err)
	}
}

func TestRejectsFloatFormat(t *testing.T) {
	raw := encodeWAV(t, 44100, 1, []int16{0})
	// patch audio format field to IEEE float (3)
	raw[20] = 3
	_, _, err := Read(bytes.NewReader(raw))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestMissingData(t *testing.T) {
	raw := encodeWAV(t, 44100, 1, []int16{0})
	// truncate before the data chunk
	_, _, err := Read(bytes.NewReader(raw[:36]))
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}
