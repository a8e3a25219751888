// Package speechcommands loads the speech commands corpus
// as lazily-transformed training samples.
//
// A DataSet scans a directory of label-named folders once,
// eagerly assigning every clip a one-hot label, and then
// reads and transforms clips on demand: each access pads
// or crops the raw audio to a fixed length and converts it
// to a log spectrogram suitable for a convolutional
// network.
package speechcommands

import (
	"crypto/md5"
	"fmt"

	"github.com/unixpickle/anynet/anyff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A Pipeline is the transform chain applied to each clip
// at access time: zero or more clip transforms followed by
// spectrogram extraction.
type Pipeline struct {
	Transforms []ClipTransform
	Features   *Spectrogrammer
}

// DefaultPipeline pads or crops clips to one second of
// 16kHz audio and extracts 8kHz log spectrograms with a
// 20ms window every 10ms.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		Transforms: []ClipTransform{&RandomCrop{Length: 16000}},
		Features:   &Spectrogrammer{SampleRate: 8000, WindowMS: 20, HopMS: 10},
	}
}

// Apply runs the chain on one clip.
func (p *Pipeline) Apply(c *Clip) (*Spectrogram, error) {
	var err error
	for _, t := range p.Transforms {
		c, err = t.Transform(c)
		if err != nil {
			return nil, err
		}
	}
	return p.Features.Spectrogram(c)
}

// A DataSet is a random-access view of a speech commands
// corpus, implementing anyff.SampleList.
//
// The corpus index and label vectors are built once at
// construction and never change, so concurrent GetSample
// calls from multiple fetch goroutines are safe.
// Nothing is cached between calls: every access re-reads
// the clip and re-runs the transform chain.
type DataSet struct {
	// Creator builds sample and label vectors.
	Creator anyvec.Creator

	// Root is the corpus directory.
	Root string

	// Pipeline turns raw clips into model inputs.
	Pipeline *Pipeline

	entries []Entry
	labels  []anyvec.Vector
}

// NewDataSet indexes the corpus under root.
//
// A non-nil subset restricts the view to the files it
// names.
// The vocabulary's order fixes the one-hot layout, so
// training and validation views must be given the same
// vocabulary for their labels to be comparable.
func NewDataSet(c anyvec.Creator, root string, subset Subset, vocab Vocabulary,
	p *Pipeline) (*DataSet, error) {
	entries, err := ScanCorpus(root, subset)
	if err != nil {
		return nil, err
	}
	labels := make([]anyvec.Vector, len(entries))
	for i, e := range entries {
		labels[i], err = vocab.OneHot(c, vocab.Canonical(e.Label))
		if err != nil {
			return nil, essentials.AddCtx("new data set", err)
		}
	}
	return &DataSet{
		Creator:  c,
		Root:     root,
		Pipeline: p,
		entries:  entries,
		labels:   labels,
	}, nil
}

// Len returns the number of samples.
func (d *DataSet) Len() int {
	return len(d.entries)
}

// Entry returns the corpus entry at an index.
func (d *DataSet) Entry(i int) Entry {
	return d.entries[i]
}

// Label returns the one-hot label vector at an index.
func (d *DataSet) Label(i int) anyvec.Vector {
	return d.labels[i]
}

// Swap swaps two samples, keeping entries and their
// labels aligned.
func (d *DataSet) Swap(i, j int) {
	d.entries[i], d.entries[j] = d.entries[j], d.entries[i]
	d.labels[i], d.labels[j] = d.labels[j], d.labels[i]
}

// Slice copies a sub-range of the view.
func (d *DataSet) Slice(i, j int) anysgd.SampleList {
	return &DataSet{
		Creator:  d.Creator,
		Root:     d.Root,
		Pipeline: d.Pipeline,
		entries:  append([]Entry{}, d.entries[i:j]...),
		labels:   append([]anyvec.Vector{}, d.labels[i:j]...),
	}
}

// Hash returns a stable digest of a sample's identity so
// that anysgd.HashSplit can carve out a deterministic
// validation split.
func (d *DataSet) Hash(i int) []byte {
	e := d.entries[i]
	sum := md5.Sum([]byte(e.Label + "/" + e.File))
	return sum[:]
}

// GetSample reads, transforms, and encodes the sample at
// an index.
// Repeated calls may crop different windows of the same
// clip, but always attach the same label.
func (d *DataSet) GetSample(i int) (*anyff.Sample, error) {
	if i < 0 || i >= len(d.entries) {
		return nil, fmt.Errorf("get sample: index %d out of range [0, %d)",
			i, len(d.entries))
	}
	clip, err := ReadClip(d.entries[i].Path(d.Root))
	if err != nil {
		return nil, essentials.AddCtx("get sample", err)
	}
	sgram, err := d.Pipeline.Apply(clip)
	if err != nil {
		return nil, essentials.AddCtx("get sample", err)
	}
	return &anyff.Sample{
		Input:  sgram.Vector(d.Creator),
		Output: d.labels[i],
	}, nil
}
