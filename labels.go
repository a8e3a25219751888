package speechcommands

import (
	"fmt"

	"github.com/unixpickle/anyvec"
)

// NoiseFolder is the corpus sub-directory holding
// background noise clips.
// Clips under it are labeled Silence.
const NoiseFolder = "_background_noise_"

// Silence and Unknown are the two synthetic classes of a
// command vocabulary.
// Neither occurs as a real folder name: Silence stands in
// for NoiseFolder and Unknown for every folder outside
// the vocabulary.
const (
	Silence = "silence"
	Unknown = "unknown"
)

// A Vocabulary is a fixed, ordered list of canonical
// class names.
//
// The order determines one-hot vector layout, so every
// view of a corpus in a training run must share one
// Vocabulary value.
type Vocabulary []string

// Commands returns the standard twelve-class vocabulary
// for the speech commands corpus: ten command words plus
// Silence and Unknown.
func Commands() Vocabulary {
	return Vocabulary{"yes", "no", "up", "down", "left", "right", "on",
		"off", "stop", "go", Silence, Unknown}
}

// Canonical maps a raw folder name to a canonical class
// name: the noise folder maps to Silence, vocabulary
// words map to themselves, and everything else maps to
// Unknown.
func (v Vocabulary) Canonical(folder string) string {
	if folder == NoiseFolder {
		return Silence
	}
	for _, class := range v {
		if class == Silence || class == Unknown {
			continue
		}
		if class == folder {
			return folder
		}
	}
	return Unknown
}

// Index returns the position of a class name in the
// vocabulary, or -1 if there is none.
func (v Vocabulary) Index(class string) int {
	for i, x := range v {
		if x == class {
			return i
		}
	}
	return -1
}

// OneHot encodes a canonical class name as a one-hot
// vector laid out in the vocabulary's order.
//
// A class without a vocabulary slot yields an error,
// since it indicates a misconfigured vocabulary rather
// than bad data.
func (v Vocabulary) OneHot(c anyvec.Creator, class string) (anyvec.Vector, error) {
	idx := v.Index(class)
	if idx < 0 {
		return nil, fmt.Errorf("encode label: no vocabulary slot for %q", class)
	}
	data := make([]float64, len(v))
	data[idx] = 1
	return c.MakeVectorData(c.MakeNumericList(data)), nil
}
