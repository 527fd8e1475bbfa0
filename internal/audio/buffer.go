package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/orcaman/writerseeker"
)

// ErrInvalidWAV is returned when a file does not carry a readable RIFF/WAVE header.
var ErrInvalidWAV = errors.New("invalid wav file")

// Data is a whole recording held in memory.
type Data struct {
	SampleRate int
	BitDepth   int
	Channels   int
	Samples    *goaudio.IntBuffer
	WAV        []byte // RIFF encoding of Samples
}

// Frames is the number of sample frames per channel.
func (d *Data) Frames() int {
	if d.Samples == nil || d.Channels == 0 {
		return 0
	}
	return len(d.Samples.Data) / d.Channels
}

func (d *Data) Duration() time.Duration {
	if d.SampleRate == 0 {
		return 0
	}
	return time.Duration(d.Frames()) * time.Second / time.Duration(d.SampleRate)
}

// PCMDepth is the sample width every loaded recording is carried at.
const PCMDepth = 16

// Load reads the entire wav file at path into memory. Samples of any other
// width are rescaled to 16-bit so the bytes always match LINEAR16.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidWAV)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode pcm: %w", err)
	}

	toPCM16(buf, int(dec.BitDepth))

	d := &Data{
		SampleRate: int(dec.SampleRate),
		BitDepth:   PCMDepth,
		Channels:   int(dec.NumChans),
		Samples:    buf,
	}
	d.WAV, err = encodeRiff(d)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// toPCM16 rescales buf in place from depth bits per sample to 16.
// 8-bit wav is unsigned and gets re-centred on zero.
func toPCM16(buf *goaudio.IntBuffer, depth int) {
	switch {
	case depth == 8:
		for i, v := range buf.Data {
			buf.Data[i] = (v - 128) << 8
		}
	case depth > PCMDepth:
		shift := uint(depth - PCMDepth)
		for i, v := range buf.Data {
			buf.Data[i] = v >> shift
		}
	case depth > 0 && depth < PCMDepth:
		shift := uint(PCMDepth - depth)
		for i, v := range buf.Data {
			buf.Data[i] = v << shift
		}
	}
	buf.SourceBitDepth = PCMDepth
}

func encodeRiff(d *Data) ([]byte, error) {
	out := &writerseeker.WriterSeeker{}
	enc := wav.NewEncoder(out, d.SampleRate, d.BitDepth, d.Channels, 1)

	if err := enc.Write(d.Samples); err != nil {
		return nil, fmt.Errorf("encoder write buffer: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoder close: %w", err)
	}

	riff, err := io.ReadAll(out.Reader())
	if err != nil {
		return nil, fmt.Errorf("reading wav into memory: %w", err)
	}
	return riff, nil
}
