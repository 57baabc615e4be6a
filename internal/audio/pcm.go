package audio

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gopxl/beep"
)

// bytesPerFrame 16-bit 立体声：每帧 4 字节
const bytesPerFrame = 4

// RenderPCM drains s into 16-bit little-endian stereo PCM, the format
// Ebitengine audio players expect. At most maxLen of audio is rendered,
// so streamers that never end (e.g. mixers) are still bounded.
//
// Parameters:
//   - s: source streamer, samples in [-1, 1] (out-of-range values are clipped)
//   - rate: sample rate of s
//   - maxLen: upper bound on the rendered length
//
// Returns:
//   - []byte: interleaved PCM, len is a multiple of 4
func RenderPCM(s beep.Streamer, rate beep.SampleRate, maxLen time.Duration) []byte {
	limit := rate.N(maxLen)
	out := make([]byte, 0, limit*bytesPerFrame)
	buf := make([][2]float64, 512)

	for rendered := 0; rendered < limit; {
		chunk := buf
		if remaining := limit - rendered; remaining < len(chunk) {
			chunk = chunk[:remaining]
		}
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = appendSample(out, chunk[i][0])
			out = appendSample(out, chunk[i][1])
		}
		rendered += n
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func appendSample(out []byte, v float64) []byte {
	v = math.Max(-1, math.Min(1, v))
	s := int16(v * math.MaxInt16)
	return append(out, byte(s), byte(s>>8))
}

// PCMStream is an in-memory io.ReadSeeker over rendered PCM.
// It satisfies what audio.Context.NewPlayer needs, plus Length().
type PCMStream struct {
	data   []byte // 16-bit signed stereo PCM
	offset int64  // Current read position
}

// NewPCMStream wraps rendered PCM data
func NewPCMStream(data []byte) *PCMStream {
	return &PCMStream{data: data}
}

// Read reads PCM data into p.
// Implements io.Reader interface.
func (p *PCMStream) Read(b []byte) (n int, err error) {
	if p.offset >= int64(len(p.data)) {
		return 0, io.EOF
	}

	n = copy(b, p.data[p.offset:])
	p.offset += int64(n)
	return n, nil
}

// Seek sets the offset for the next Read.
// Implements io.Seeker interface.
func (p *PCMStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64

	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = p.offset + offset
	case io.SeekEnd:
		newOffset = int64(len(p.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if newOffset < 0 {
		return 0, fmt.Errorf("negative position: %d", newOffset)
	}

	p.offset = newOffset
	return newOffset, nil
}

// Length returns the total length of the PCM data in bytes.
func (p *PCMStream) Length() int64 {
	return int64(len(p.data))
}

// Duration returns the playback length at the given sample rate
func (p *PCMStream) Duration(rate beep.SampleRate) time.Duration {
	return rate.D(len(p.data) / bytesPerFrame)
}
