package platform

import (
	"math"
	"time"

	"github.com/faiface/beep"

	"wodtimer/internal/core/model"
)

const (
	amplitude   = 0.6
	fadeSamples = 220
)

// cueFormat is the format every cue buffer is rendered in.
var cueFormat = beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}

// tone is a sine beep repeated count times with a silent gap in between.
type tone struct {
	frequency float64
	length    time.Duration
	gap       time.Duration
	count     int
}

var cueTones = map[model.Cue]tone{
	model.CueStart:          {frequency: 880, length: 400 * time.Millisecond, count: 1},
	model.CueHalfway:        {frequency: 660, length: 150 * time.Millisecond, gap: 100 * time.Millisecond, count: 2},
	model.CueTenSecondsLeft: {frequency: 990, length: 120 * time.Millisecond, gap: 80 * time.Millisecond, count: 3},
	model.CueComplete:       {frequency: 1320, length: 900 * time.Millisecond, count: 1},
}

// sine streams one faded sine beep of the given number of samples.
func sine(frequency float64, samples int, rate beep.SampleRate) beep.Streamer {
	position := 0
	return beep.StreamerFunc(func(buffer [][2]float64) (int, bool) {
		if position >= samples {
			return 0, false
		}
		n := 0
		for n < len(buffer) && position < samples {
			envelope := 1.0
			if position < fadeSamples {
				envelope = float64(position) / fadeSamples
			} else if samples-position < fadeSamples {
				envelope = float64(samples-position) / fadeSamples
			}
			value := math.Sin(2*math.Pi*frequency*float64(position)/float64(rate)) * amplitude * envelope
			buffer[n][0] = value
			buffer[n][1] = value
			n++
			position++
		}
		return n, true
	})
}

// render synthesizes the tone into a buffer that can be replayed.
func (pattern tone) render(format beep.Format) *beep.Buffer {
	buffer := beep.NewBuffer(format)
	length := format.SampleRate.N(pattern.length)
	for i := 0; i < pattern.count; i++ {
		if i > 0 && pattern.gap > 0 {
			buffer.Append(beep.Silence(format.SampleRate.N(pattern.gap)))
		}
		buffer.Append(sine(pattern.frequency, length, format.SampleRate))
	}
	return buffer
}
