package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/circular-rule/internal/config"
)

const (
	// Synthesized click
	clickLength = 30 * time.Millisecond
	clickFreq   = 1800.0
	clickDecay  = 4 * time.Millisecond

	// Longest sample kept from a user-supplied click file
	maxClickLength = 500 * time.Millisecond

	resampleQuality = 4
)

// clicker plays a short sound whenever a ring snaps. A nil buffer means
// silent mode.
type clicker struct {
	buf    *beep.Buffer
	volume float64
	log    *slog.Logger
}

// newClicker prepares the click sound and the speaker. On failure it still
// returns a usable silent clicker along with the error.
func newClicker(cfg config.Config, log *slog.Logger) (*clicker, error) {
	c := &clicker{volume: cfg.ClickVolume, log: log}
	if cfg.Mute {
		log.Info("sound muted")
		return c, nil
	}

	sr := beep.SampleRate(config.ClickSampleRate)
	buf, err := loadClick(cfg.ClickSound, sr)
	if err != nil {
		return c, err
	}
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return c, fmt.Errorf("failed to init speaker: %w", err)
	}
	c.buf = buf
	log.Info("audio initialised", "sample_rate", int(sr), "click", clickSource(cfg.ClickSound), "samples", buf.Len())
	return c, nil
}

func clickSource(path string) string {
	if path == "" {
		return "synth"
	}
	return path
}

func (c *clicker) enabled() bool {
	return c != nil && c.buf != nil
}

func (c *clicker) play() {
	if !c.enabled() {
		return
	}
	speaker.Play(&effects.Volume{
		Streamer: c.buf.Streamer(0, c.buf.Len()),
		Base:     2,
		Volume:   c.volume,
	})
}

// loadClick renders the click into memory at the speaker's sample rate,
// either synthesized or decoded from path.
func loadClick(path string, sr beep.SampleRate) (*beep.Buffer, error) {
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	if path == "" {
		buf.Append(synthClick(sr))
		return buf, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open click sound: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		_ = f.Close()
		return nil, errors.New("unsupported click sound type: " + ext)
	}
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to decode click sound %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = beep.Take(format.SampleRate.N(maxClickLength), streamer)
	if format.SampleRate != sr {
		s = beep.Resample(resampleQuality, format.SampleRate, sr, s)
	}
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read click sound %s: %w", path, err)
	}
	return buf, nil
}

// synthClick is a decaying sine burst.
func synthClick(sr beep.SampleRate) beep.Streamer {
	n := sr.N(clickLength)
	decay := clickDecay.Seconds()
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= n {
			return 0, false
		}
		k := 0
		for ; k < len(samples) && i < n; k++ {
			t := float64(i) / float64(sr)
			v := math.Sin(2*math.Pi*clickFreq*t) * math.Exp(-t/decay)
			samples[k] = [2]float64{v, v}
			i++
		}
		return k, true
	})
}
