package sound

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

type fakeVoice struct{ restarts int }

func (v *fakeVoice) Restart() { v.restarts++ }

type fakeBackend struct {
	voices map[string]*fakeVoice
	sizes  map[string]int
	fail   string
}

func (b *fakeBackend) Load(name string, pcm []byte) (Voice, error) {
	if name == b.fail {
		return nil, errors.New("device busy")
	}
	if b.voices == nil {
		b.voices = map[string]*fakeVoice{}
		b.sizes = map[string]int{}
	}
	v := &fakeVoice{}
	b.voices[name] = v
	b.sizes[name] = len(pcm)
	return v, nil
}

func TestSynthesize(t *testing.T) {
	cases := []struct {
		name  string
		tone  Tone
		bytes int
	}{
		{"tenth_second", Tone{From: 440, To: 440, Seconds: 0.1, Volume: 0.5}, 4410 * 4},
		{"sweep", Tone{From: 200, To: 800, Seconds: 0.05, Volume: 1}, 2205 * 4},
		{"empty", Tone{From: 440, Seconds: 0}, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pcm := Synthesize(c.tone)
			if len(pcm) != c.bytes {
				t.Fatalf("len = %d, want %d", len(pcm), c.bytes)
			}
			limit := int16(math.Ceil(c.tone.Volume * math.MaxInt16))
			for i := 0; i+3 < len(pcm); i += 4 {
				l := int16(binary.LittleEndian.Uint16(pcm[i:]))
				r := int16(binary.LittleEndian.Uint16(pcm[i+2:]))
				if l != r {
					t.Fatalf("frame %d: channels differ", i/4)
				}
				if l > limit || l < -limit {
					t.Fatalf("frame %d: sample %d exceeds volume", i/4, l)
				}
			}
			if len(pcm) > 0 && binary.LittleEndian.Uint16(pcm[0:]) != 0 {
				t.Fatalf("expected a silent first frame from the fade in")
			}
		})
	}
}

func TestControllerCooldown(t *testing.T) {
	b := &fakeBackend{}
	c, err := NewController(b, DefaultCues())
	if err != nil {
		t.Fatal(err)
	}
	for name := range DefaultCues() {
		if b.sizes[name] == 0 {
			t.Fatalf("cue %s loaded without audio", name)
		}
	}

	played := 0
	for frame := 0; frame < 20; frame++ {
		ok, err := c.Play(CueJump)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			played++
		}
		c.Tick()
	}
	// cooldown 6: frames 0, 6, 12, 18
	if played != 4 || b.voices[CueJump].restarts != 4 {
		t.Fatalf("played %d times (%d restarts), want 4", played, b.voices[CueJump].restarts)
	}

	if ok, _ := c.Play(CueCollect); !ok {
		t.Fatalf("cues keep independent cooldowns")
	}
	if _, err := c.Play("explosion"); !errors.Is(err, ErrUnknownCue) {
		t.Fatalf("expected ErrUnknownCue, got %v", err)
	}
}

func TestNewControllerErrors(t *testing.T) {
	if _, err := NewController(nil, DefaultCues()); err == nil {
		t.Fatalf("expected error for nil backend")
	}
	if _, err := NewController(&fakeBackend{fail: CueWin}, DefaultCues()); err == nil {
		t.Fatalf("expected load error to surface")
	}

	var c *Controller
	c.Tick()
	if ok, err := c.Play(CueJump); ok || err != nil {
		t.Fatalf("nil controller should be silent")
	}
}

func TestPlayOrLogNeverPanics(t *testing.T) {
	b := &fakeBackend{}
	c, err := NewController(b, DefaultCues())
	if err != nil {
		t.Fatal(err)
	}
	c.PlayOrLog("explosion")
	c.PlayOrLog(CueLand)
	if b.voices[CueLand].restarts != 1 {
		t.Fatalf("land restarts = %d, want 1", b.voices[CueLand].restarts)
	}

	var nilController *Controller
	nilController.PlayOrLog(CueWin)
}
