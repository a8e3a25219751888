package speechcommands

import (
	"math"
	"testing"
)

func TestResampleLength(t *testing.T) {
	tests := []struct {
		in      int
		inRate  int
		outRate int
		out     int
	}{
		{16000, 16000, 8000, 8000},
		{12000, 16000, 8000, 6000},
		{8000, 8000, 16000, 16000},
		{16000, 16000, 16000, 16000},
		{101, 16000, 8000, 51},
	}
	for _, test := range tests {
		out := Resample(make([]float64, test.in), test.inRate, test.outRate)
		if len(out) != test.out {
			t.Errorf("%d samples %d->%dHz: length should be %d but got %d",
				test.in, test.inRate, test.outRate, test.out, len(out))
		}
	}
}

func TestResampleDC(t *testing.T) {
	in := make([]float64, 16000)
	for i := range in {
		in[i] = 0.5
	}
	out := Resample(in, 16000, 8000)
	for i, x := range out {
		if math.Abs(x-0.5) > 1e-8 {
			t.Fatalf("sample %d should be 0.5 but got %f", i, x)
		}
	}
}

// A sine with a whole number of cycles per window sits in
// a single frequency bin, so bandlimited resampling must
// reproduce it exactly at the new rate.
func TestResampleSine(t *testing.T) {
	const freq = 100.0
	in := make([]float64, 16000)
	for i := range in {
		in[i] = math.Sin(2 * math.Pi * freq * float64(i) / 16000)
	}
	out := Resample(in, 16000, 8000)
	for i, x := range out {
		expected := math.Sin(2 * math.Pi * freq * float64(i) / 8000)
		if math.Abs(x-expected) > 1e-8 {
			t.Fatalf("sample %d should be %f but got %f", i, expected, x)
		}
	}
}

func TestSpectrogramShape(t *testing.T) {
	s := &Spectrogrammer{SampleRate: 8000, WindowMS: 20, HopMS: 10}

	sgram, err := s.Spectrogram(&Clip{Rate: 16000, Samples: make([]float64, 16000)})
	if err != nil {
		t.Fatal(err)
	}
	if sgram.TimeBins != 99 || sgram.FreqBins != 81 {
		t.Errorf("shape should be (99, 81) but got (%d, %d)", sgram.TimeBins,
			sgram.FreqBins)
	}
	if len(sgram.Values) != sgram.TimeBins*sgram.FreqBins {
		t.Errorf("values length should be %d but got %d",
			sgram.TimeBins*sgram.FreqBins, len(sgram.Values))
	}

	timeBins, freqBins := s.Shape(16000, 16000)
	if timeBins != sgram.TimeBins || freqBins != sgram.FreqBins {
		t.Errorf("Shape reports (%d, %d) but Spectrogram produced (%d, %d)",
			timeBins, freqBins, sgram.TimeBins, sgram.FreqBins)
	}
}

func TestSpectrogramSilence(t *testing.T) {
	s := &Spectrogrammer{SampleRate: 8000, WindowMS: 20, HopMS: 10}
	sgram, err := s.Spectrogram(&Clip{Rate: 8000, Samples: make([]float64, 8000)})
	if err != nil {
		t.Fatal(err)
	}
	floor := float32(math.Log(1e-10))
	for i, x := range sgram.Values {
		if x != floor {
			t.Fatalf("value %d should be %f but got %f", i, floor, x)
		}
	}
}

func TestSpectrogramTooShort(t *testing.T) {
	s := &Spectrogrammer{SampleRate: 8000, WindowMS: 20, HopMS: 10}
	if _, err := s.Spectrogram(&Clip{Rate: 8000, Samples: make([]float64, 10)}); err == nil {
		t.Error("expected an error for a clip shorter than one window")
	}
}

// Cropping to a fixed length must pin the spectrogram
// shape no matter how long the raw clip was.
func TestPipelineShapeStability(t *testing.T) {
	p := DefaultPipeline()
	var timeBins, freqBins int
	for _, length := range []int{4000, 12000, 16000, 20000} {
		clip := &Clip{Rate: 16000, Samples: make([]float64, length)}
		sgram, err := p.Apply(clip)
		if err != nil {
			t.Fatal(err)
		}
		if timeBins == 0 {
			timeBins, freqBins = sgram.TimeBins, sgram.FreqBins
		} else if sgram.TimeBins != timeBins || sgram.FreqBins != freqBins {
			t.Errorf("clip of %d samples produced (%d, %d), want (%d, %d)",
				length, sgram.TimeBins, sgram.FreqBins, timeBins, freqBins)
		}
	}
}
