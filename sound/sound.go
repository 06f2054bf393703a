// Package sound turns gameplay events into short synthesized cues.
package sound

import (
	"errors"
	"fmt"
	"log"
)

const SampleRate = 44100

var ErrUnknownCue = errors.New("sound: unknown cue")

// Cue names triggered by the game loop.
const (
	CueJump    = "jump"
	CueLand    = "land"
	CueCollect = "collect"
	CueWin     = "win"
	CueLose    = "lose"
)

// Voice plays one prepared sound from its start.
type Voice interface {
	Restart()
}

// Backend prepares 16-bit little-endian stereo PCM at SampleRate for
// playback.
type Backend interface {
	Load(name string, pcm []byte) (Voice, error)
}

// Tone describes a linear frequency sweep with a short fade in and out.
type Tone struct {
	From    float64
	To      float64
	Seconds float64
	Volume  float64
	// Cooldown is the number of frames during which a repeat is dropped.
	Cooldown int
}

func DefaultCues() map[string]Tone {
	return map[string]Tone{
		CueJump:    {From: 440, To: 880, Seconds: 0.12, Volume: 0.3, Cooldown: 6},
		CueLand:    {From: 220, To: 140, Seconds: 0.08, Volume: 0.35, Cooldown: 10},
		CueCollect: {From: 880, To: 1320, Seconds: 0.1, Volume: 0.3, Cooldown: 2},
		CueWin:     {From: 523, To: 1046, Seconds: 0.5, Volume: 0.35, Cooldown: 60},
		CueLose:    {From: 330, To: 110, Seconds: 0.6, Volume: 0.35, Cooldown: 60},
	}
}

type cue struct {
	voice    Voice
	cooldown int
	last     int
	played   bool
}

// Controller owns every cue. It is created once by the game and advanced
// with Tick once per frame.
type Controller struct {
	cues  map[string]*cue
	frame int
}

func NewController(backend Backend, tones map[string]Tone) (*Controller, error) {
	if backend == nil {
		return nil, fmt.Errorf("sound: nil backend")
	}
	c := &Controller{cues: make(map[string]*cue, len(tones))}
	for name, tone := range tones {
		voice, err := backend.Load(name, Synthesize(tone))
		if err != nil {
			return nil, fmt.Errorf("sound: load %s: %w", name, err)
		}
		c.cues[name] = &cue{voice: voice, cooldown: tone.Cooldown}
	}
	return c, nil
}

func (c *Controller) Tick() {
	if c == nil {
		return
	}
	c.frame++
}

// Play restarts the named cue unless it played within its cooldown. It
// reports whether the cue actually started.
func (c *Controller) Play(name string) (bool, error) {
	if c == nil {
		return false, nil
	}
	q, ok := c.cues[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCue, name)
	}
	if q.played && c.frame-q.last < q.cooldown {
		return false, nil
	}
	q.voice.Restart()
	q.played = true
	q.last = c.frame
	return true, nil
}

// PlayOrLog is Play for callers that only log failures.
func (c *Controller) PlayOrLog(name string) {
	if _, err := c.Play(name); err != nil {
		log.Printf("sound: %v", err)
	}
}
