package sound

import (
	"encoding/binary"
	"math"
)

const fadeSeconds = 0.01

// Synthesize renders t as 16-bit little-endian stereo PCM.
func Synthesize(t Tone) []byte {
	if t.Seconds <= 0 {
		return nil
	}
	n := int(t.Seconds * SampleRate)
	fade := int(fadeSeconds * SampleRate)
	vol := math.Max(0, math.Min(1, t.Volume))

	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.From + (t.To-t.From)*progress
		phase += 2 * math.Pi * freq / SampleRate

		env := 1.0
		if i < fade {
			env = float64(i) / float64(fade)
		} else if n-i < fade {
			env = float64(n-i) / float64(fade)
		}
		sample := int16(math.Sin(phase) * env * vol * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}
