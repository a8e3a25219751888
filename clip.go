package speechcommands

import (
	"fmt"
	"math/rand"

	"github.com/unixpickle/wav"
)

// A Clip is one raw mono audio clip.
type Clip struct {
	// Rate is the sample rate in Hz.
	Rate int

	// Samples holds PCM samples in the range [-1, 1].
	Samples []float64
}

// ReadClip reads a mono WAV file.
func ReadClip(path string) (*Clip, error) {
	sound, err := wav.ReadSoundFile(path)
	if err != nil {
		return nil, err
	}
	if sound.Channels() != 1 {
		return nil, fmt.Errorf("read clip %s: expected mono but got %d channels",
			path, sound.Channels())
	}
	samples := make([]float64, len(sound.Samples()))
	for i, s := range sound.Samples() {
		samples[i] = float64(s)
	}
	return &Clip{Rate: sound.SampleRate(), Samples: samples}, nil
}

// A ClipTransform produces a modified version of a clip,
// e.g. for augmentation.
// Transforms must not mutate their argument.
type ClipTransform interface {
	Transform(c *Clip) (*Clip, error)
}

// RandomCrop pads or crops clips to a fixed length.
//
// Clips longer than Length are cut at a uniformly random
// offset.
// Shorter clips are padded with leading zeroes, keeping
// the audio at the end of the result.
type RandomCrop struct {
	// Length is the output length in samples.
	Length int

	// Rand, if non-nil, supplies crop offsets.
	// It must not be shared across goroutines, since
	// rand.Rand is not safe for concurrent use.
	// A nil Rand uses the locked global source, which is
	// safe for concurrent GetSample calls.
	Rand *rand.Rand
}

// Transform returns a clip of exactly r.Length samples at
// the input's sample rate.
func (r *RandomCrop) Transform(c *Clip) (*Clip, error) {
	if r.Length <= 0 {
		return nil, fmt.Errorf("random crop: invalid length %d", r.Length)
	}
	out := make([]float64, r.Length)
	if len(c.Samples) >= r.Length {
		var offset int
		if len(c.Samples) > r.Length {
			offset = r.intn(len(c.Samples) - r.Length)
		}
		copy(out, c.Samples[offset:offset+r.Length])
	} else {
		copy(out[r.Length-len(c.Samples):], c.Samples)
	}
	return &Clip{Rate: c.Rate, Samples: out}, nil
}

func (r *RandomCrop) intn(n int) int {
	if r.Rand != nil {
		return r.Rand.Intn(n)
	}
	return rand.Intn(n)
}
