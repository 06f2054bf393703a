package main

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/starstruck/sound"
)

// ebitenAudio plays synthesized cues through ebiten's audio context.
type ebitenAudio struct {
	ctx *audio.Context
}

func newEbitenAudio() *ebitenAudio {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sound.SampleRate)
	}
	return &ebitenAudio{ctx: ctx}
}

func (a *ebitenAudio) Load(name string, pcm []byte) (sound.Voice, error) {
	return &ebitenVoice{player: a.ctx.NewPlayerFromBytes(pcm)}, nil
}

type ebitenVoice struct {
	player *audio.Player
}

func (v *ebitenVoice) Restart() {
	if err := v.player.Rewind(); err != nil {
		return
	}
	v.player.Play()
}
