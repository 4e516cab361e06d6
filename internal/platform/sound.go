package platform

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"

	"wodtimer/internal/core/model"
)

// ErrPlaybackUnsupported indicates no audio device could be opened.
var ErrPlaybackUnsupported = errors.New("audio playback unsupported")

// Output is the audio device cues are mixed into.
type Output interface {
	Init(format beep.Format) error
	Play(streamer beep.Streamer)
	Clear()
}

// NewSpeakerOutput returns the output backed by the beep speaker.
func NewSpeakerOutput() Output {
	return speakerOutput{}
}

type speakerOutput struct{}

func (speakerOutput) Init(format beep.Format) error {
	return speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10))
}

func (speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (speakerOutput) Clear() {
	speaker.Clear()
}

// Logger receives playback failures.
type Logger interface {
	Error(format string, v ...interface{})
}

// SoundConfig configures a SoundPlayer.
type SoundConfig struct {
	Muted bool
	// Volume is a base-2 gain; 0 plays cues unchanged.
	Volume float64
	Output Output
	Logger Logger
}

// playback wraps a playing cue so it can be cut off from outside the speaker.
type playback struct {
	streamer beep.Streamer
	stopped  atomic.Bool
}

func (active *playback) Stream(samples [][2]float64) (int, bool) {
	if active.stopped.Load() {
		return 0, false
	}
	n, ok := active.streamer.Stream(samples)
	if !ok {
		active.stopped.Store(true)
	}
	return n, ok
}

func (active *playback) Err() error {
	return active.streamer.Err()
}

func (active *playback) stop() {
	active.stopped.Store(true)
}

// SoundPlayer plays cue tones without blocking. Playing a cue again restarts it.
type SoundPlayer struct {
	mu       sync.Mutex
	muted    bool
	volume   float64
	output   Output
	logger   Logger
	ready    bool
	initErr  error
	buffers  map[model.Cue]*beep.Buffer
	playing  map[model.Cue]*playback
	reported map[string]struct{}
}

// NewSoundPlayer creates a player. The output is opened and the tones are rendered
// on the first unmuted Play.
func NewSoundPlayer(config SoundConfig) *SoundPlayer {
	if config.Output == nil {
		config.Output = NewSpeakerOutput()
	}
	return &SoundPlayer{
		muted:    config.Muted,
		volume:   config.Volume,
		output:   config.Output,
		logger:   config.Logger,
		buffers:  map[model.Cue]*beep.Buffer{},
		playing:  map[model.Cue]*playback{},
		reported: map[string]struct{}{},
	}
}

// Play starts the tone for cue and returns immediately.
func (player *SoundPlayer) Play(cue model.Cue) {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.muted {
		return
	}
	if err := player.openLocked(); err != nil {
		player.reportLocked(err)
		return
	}
	buffer, err := player.bufferLocked(cue)
	if err != nil {
		player.reportLocked(err)
		return
	}

	if previous, ok := player.playing[cue]; ok {
		previous.stop()
	}
	active := &playback{streamer: &effects.Volume{
		Streamer: buffer.Streamer(0, buffer.Len()),
		Base:     2,
		Volume:   player.volume,
	}}
	player.playing[cue] = active
	player.output.Play(active)
}

// SetMuted toggles playback. Muting stops cues that are still sounding.
func (player *SoundPlayer) SetMuted(muted bool) {
	player.mu.Lock()
	defer player.mu.Unlock()

	player.muted = muted
	if muted {
		player.stopLocked()
	}
}

// Muted reports whether playback is muted.
func (player *SoundPlayer) Muted() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.muted
}

// Close stops every cue.
func (player *SoundPlayer) Close() {
	player.mu.Lock()
	defer player.mu.Unlock()

	player.stopLocked()
	if player.ready {
		player.output.Clear()
	}
}

func (player *SoundPlayer) stopLocked() {
	for cue, active := range player.playing {
		active.stop()
		delete(player.playing, cue)
	}
}

// openLocked initializes the output once. A failure is kept and returned on every
// later call.
func (player *SoundPlayer) openLocked() error {
	if player.ready || player.initErr != nil {
		return player.initErr
	}
	if err := player.output.Init(cueFormat); err != nil {
		player.initErr = fmt.Errorf("%w: %v", ErrPlaybackUnsupported, err)
		return player.initErr
	}
	player.ready = true
	return nil
}

func (player *SoundPlayer) bufferLocked(cue model.Cue) (*beep.Buffer, error) {
	if buffer, ok := player.buffers[cue]; ok {
		return buffer, nil
	}
	pattern, ok := cueTones[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %q", cue)
	}
	buffer := pattern.render(cueFormat)
	player.buffers[cue] = buffer
	return buffer, nil
}

// reportLocked logs each distinct failure once.
func (player *SoundPlayer) reportLocked(err error) {
	message := err.Error()
	if _, seen := player.reported[message]; seen {
		return
	}
	player.reported[message] = struct{}{}
	if player.logger != nil {
		player.logger.Error("sound: %v", err)
	}
}
