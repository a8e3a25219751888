package speechcommands

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/unixpickle/anyvec"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// logEpsilon keeps silent frames away from log(0).
const logEpsilon = 1e-10

// A Spectrogram is a single-channel time-frequency image
// with TimeBins rows of FreqBins log-magnitude values.
type Spectrogram struct {
	TimeBins int
	FreqBins int

	// Values is laid out row-major with frequency as the
	// innermost axis.
	Values []float32
}

// Vector packs the spectrogram into a flat vector for use
// as a network input.
func (s *Spectrogram) Vector(c anyvec.Creator) anyvec.Vector {
	data := make([]float64, len(s.Values))
	for i, x := range s.Values {
		data[i] = float64(x)
	}
	return c.MakeVectorData(c.MakeNumericList(data))
}

// A Spectrogrammer converts clips into log-magnitude
// spectrograms.
//
// Clips are first resampled to SampleRate.
// Analysis windows are WindowMS milliseconds long, HopMS
// milliseconds apart, and tapered by a Hann window.
type Spectrogrammer struct {
	// SampleRate is the rate to resample to, in Hz.
	SampleRate int

	// WindowMS and HopMS are the window length and stride
	// in milliseconds.
	WindowMS float64
	HopMS    float64
}

// Shape returns the dimensions of the spectrogram of a
// clip with inLength samples at inRate Hz.
func (s *Spectrogrammer) Shape(inLength, inRate int) (timeBins, freqBins int) {
	resampled := inLength
	if inRate != s.SampleRate {
		resampled = int(math.Round(float64(s.SampleRate) / float64(inRate) *
			float64(inLength)))
	}
	win, hop := s.windowSize()
	if win <= 0 || hop <= 0 || resampled < win {
		return 0, 0
	}
	return (resampled-win)/hop + 1, win/2 + 1
}

// Spectrogram computes a clip's spectrogram.
func (s *Spectrogrammer) Spectrogram(c *Clip) (*Spectrogram, error) {
	samples := c.Samples
	if c.Rate != s.SampleRate {
		samples = Resample(samples, c.Rate, s.SampleRate)
	}
	win, hop := s.windowSize()
	if win <= 0 || hop <= 0 {
		return nil, fmt.Errorf("spectrogram: invalid window %gms/%gms at %dHz",
			s.WindowMS, s.HopMS, s.SampleRate)
	}
	if len(samples) < win {
		return nil, fmt.Errorf("spectrogram: clip of %d samples is shorter than "+
			"one %d-sample window", len(samples), win)
	}

	taper := make([]float64, win)
	for i := range taper {
		taper[i] = 1
	}
	window.Hann(taper)

	timeBins := (len(samples)-win)/hop + 1
	freqBins := win/2 + 1
	fft := fourier.NewFFT(win)
	frame := make([]float64, win)
	coeff := make([]complex128, freqBins)
	values := make([]float32, 0, timeBins*freqBins)
	for t := 0; t < timeBins; t++ {
		for i, x := range samples[t*hop : t*hop+win] {
			frame[i] = x * taper[i]
		}
		coeff = fft.Coefficients(coeff, frame)
		for _, x := range coeff {
			values = append(values, float32(math.Log(cmplx.Abs(x)+logEpsilon)))
		}
	}
	return &Spectrogram{TimeBins: timeBins, FreqBins: freqBins, Values: values}, nil
}

func (s *Spectrogrammer) windowSize() (win, hop int) {
	win = int(math.Round(s.WindowMS * float64(s.SampleRate) / 1000))
	hop = int(math.Round(s.HopMS * float64(s.SampleRate) / 1000))
	return
}

// Resample converts samples from inRate to outRate using
// Fourier interpolation.
// The result has round(outRate/inRate*len(samples))
// samples.
func Resample(samples []float64, inRate, outRate int) []float64 {
	if inRate == outRate {
		return append([]float64{}, samples...)
	}
	n := len(samples)
	m := int(math.Round(float64(outRate) / float64(inRate) * float64(n)))
	if n == 0 || m == 0 {
		return make([]float64, m)
	}
	coeff := fourier.NewFFT(n).Coefficients(nil, samples)
	truncated := make([]complex128, m/2+1)
	numCopy := len(coeff)
	if len(truncated) < numCopy {
		numCopy = len(truncated)
	}
	copy(truncated, coeff[:numCopy])
	if m < n && m%2 == 0 {
		// The output's Nyquist bin has no conjugate twin,
		// so it must be real for the sequence to be real.
		truncated[m/2] = complex(real(truncated[m/2]), 0)
	}
	out := fourier.NewFFT(m).Sequence(nil, truncated)
	scale := 1 / float64(n)
	for i := range out {
		out[i] *= scale
	}
	return out
}
