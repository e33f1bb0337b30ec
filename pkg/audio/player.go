package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/rs/zerolog"
)

const (
	sampleRate = 44100
	channels   = 1
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
)

// Player manages chime playback with cancellation support
type Player struct {
	stopChan chan struct{}
	player   *oto.Player
	stopOnce sync.Once
	log      zerolog.Logger
}

// initAudioContext initializes the global audio context once
func initAudioContext(log zerolog.Logger) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Error().Err(err).Msg("failed to initialize audio context")
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		log.Info().Msg("audio context initialized")
	})
}

// chimeSamples synthesizes a short two-tone chime as 16-bit PCM
func chimeSamples() []byte {
	tones := []struct {
		freq     float64
		duration time.Duration
	}{
		{880, 150 * time.Millisecond},
		{1175, 250 * time.Millisecond},
	}

	var buf bytes.Buffer
	for _, tone := range tones {
		n := int(float64(sampleRate) * tone.duration.Seconds())
		for i := 0; i < n; i++ {
			// Linear fade-out keeps the tone from clicking at the end
			envelope := 1 - float64(i)/float64(n)
			sample := int16(0.4 * envelope * math.Sin(2*math.Pi*tone.freq*float64(i)/sampleRate) * math.MaxInt16)
			binary.Write(&buf, binary.LittleEndian, sample)
		}
	}
	return buf.Bytes()
}

// PlayChime plays the reminder chime and returns a Player that can stop
// it early. Returns nil when the audio device is unavailable; callers
// treat that as a silent reminder, not an error.
func PlayChime(log zerolog.Logger) *Player {
	initAudioContext(log)

	if !audioCtxReady || globalAudioCtx == nil {
		log.Warn().Msg("audio context not ready, skipping chime")
		return nil
	}

	p := &Player{
		stopChan: make(chan struct{}),
		log:      log,
	}

	// Play in a goroutine so the reminder path never blocks
	go func() {
		p.player = globalAudioCtx.NewPlayer(bytes.NewReader(chimeSamples()))
		p.player.Play()

		for p.player.IsPlaying() {
			select {
			case <-p.stopChan:
				p.player.Close()
				return
			case <-time.After(time.Millisecond):
			}
		}

		if err := p.player.Close(); err != nil {
			p.log.Error().Err(err).Msg("failed to close audio player")
		}
	}()

	return p
}

// Stop stops the playback early
func (p *Player) Stop() {
	if p == nil {
		return
	}
	p.stopOnce.Do(func() { close(p.stopChan) })
}
