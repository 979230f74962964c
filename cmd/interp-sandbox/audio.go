package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const audioSampleRate = beep.SampleRate(44100)

type audioState struct {
	enabled bool
}

func initAudio() *audioState {
	a := &audioState{}
	if err := speaker.Init(audioSampleRate, audioSampleRate.N(time.Second/10)); err == nil {
		a.enabled = true
	}
	// Silent operation is fine, the sandbox runs without sound
	return a
}

// playBounce emits a short blip when a sprite hits a wall.
func (a *audioState) playBounce() {
	if !a.enabled {
		return
	}
	sine, err := generators.SineTone(audioSampleRate, 660)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(audioSampleRate.N(40*time.Millisecond), sine))
}

func (a *audioState) close() {
	if a.enabled {
		speaker.Close()
	}
}
