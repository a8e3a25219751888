// Command speech-train trains a convolutional network to
// recognize spoken commands.
//
// The corpus directory must contain one folder per raw
// label with WAV clips inside.
// If a validation membership list is given, it selects
// the validation view of the corpus; otherwise a
// deterministic hash split reserves a tenth of the
// samples for validation.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	speechcommands "github.com/rebryk/SPbAU-Speech-Recognition"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anynet/anyconv"
	"github.com/unixpickle/anynet/anyff"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/rip"
	"github.com/unixpickle/serializer"
)

const (
	clipLength = 16000
	clipRate   = 16000
)

const networkTemplate = `
Input(w=%d, h=%d, d=1)
Conv(w=5, h=5, n=8)
BatchNorm
ReLU
MaxPool(w=2, h=2)
Conv(w=3, h=3, n=16)
BatchNorm
ReLU
MaxPool(w=2, h=2)
FC(out=128)
ReLU
FC(out=%d)
Softmax
`

func main() {
	godotenv.Load()

	var dataDir string
	var valList string
	var netFile string
	var batchSize int
	var stepSize float64
	flag.StringVar(&dataDir, "data", envDefault("SPEECH_DATA_DIR", "data/train/audio"),
		"corpus directory")
	flag.StringVar(&valList, "validation", envDefault("SPEECH_VALIDATION_LIST", ""),
		"validation membership list (empty for a hash split)")
	flag.StringVar(&netFile, "net", envDefault("SPEECH_NET_FILE", "speech_net"),
		"network file")
	flag.IntVar(&batchSize, "batch", 64, "SGD batch size")
	flag.Float64Var(&stepSize, "step", 0.001, "SGD step size")
	flag.Parse()

	creator := anyvec32.CurrentCreator()
	vocab := speechcommands.Commands()
	pipeline := &speechcommands.Pipeline{
		Transforms: []speechcommands.ClipTransform{
			&speechcommands.RandomCrop{Length: clipLength},
		},
		Features: &speechcommands.Spectrogrammer{
			SampleRate: 8000,
			WindowMS:   20,
			HopMS:      10,
		},
	}

	log.Println("Indexing corpus...")
	full, err := speechcommands.NewDataSet(creator, dataDir, nil, vocab, pipeline)
	if err != nil {
		essentials.Die(err)
	} else if full.Len() == 0 {
		essentials.Die("no audio files under " + dataDir)
	}

	var training, validation anyff.SampleList
	if valList != "" {
		subset, err := speechcommands.ReadSubset(valList)
		if err != nil {
			essentials.Die(err)
		}
		val, err := speechcommands.NewDataSet(creator, dataDir, subset, vocab, pipeline)
		if err != nil {
			essentials.Die(err)
		}
		training, validation = full, val
	} else {
		left, right := anysgd.HashSplit(full, 0.1)
		validation = left.(anyff.SampleList)
		training = right.(anyff.SampleList)
	}
	log.Printf("Training on %d samples, validating on %d.", training.Len(),
		validation.Len())

	network := loadOrCreateNetwork(creator, netFile, pipeline, len(vocab))

	t := &anyff.Trainer{
		Net:     network,
		Cost:    anynet.DotCost{},
		Params:  network.Parameters(),
		Average: true,
	}

	var iterNum int
	s := &anysgd.SGD{
		Fetcher:     t,
		Gradienter:  t,
		Transformer: &anysgd.Adam{},
		Samples:     training,
		Rater:       anysgd.ConstRater(stepSize),
		StatusFunc: func(b anysgd.Batch) {
			log.Printf("iter %d: cost=%v", iterNum, t.LastCost)
			iterNum++
		},
		BatchSize: batchSize,
	}

	log.Println("Press ctrl+c once to stop...")
	s.Run(rip.NewRIP().Chan())

	if err := serializer.SaveAny(netFile, network); err != nil {
		essentials.Die(err)
	}
	log.Println("Saved network to", netFile)

	if validation.Len() > 0 {
		log.Println("Computing validation accuracy...")
		log.Printf("Validation accuracy: %.4f", accuracy(network, validation))
	}
}

func loadOrCreateNetwork(c anyvec.Creator, path string,
	p *speechcommands.Pipeline, numClasses int) anynet.Net {
	var net anynet.Net
	if err := serializer.LoadAny(path, &net); err == nil {
		log.Println("Loaded network from", path)
		return net
	}
	log.Println("Creating a new network...")
	timeBins, freqBins := p.Features.Shape(clipLength, clipRate)
	code := fmt.Sprintf(networkTemplate, freqBins, timeBins, numClasses)
	layer, err := anyconv.FromMarkup(c, code)
	if err != nil {
		essentials.Die(err)
	}
	return layer.(anynet.Net)
}

func accuracy(net anynet.Layer, samples anyff.SampleList) float64 {
	var correct int
	for i := 0; i < samples.Len(); i++ {
		sample, err := samples.GetSample(i)
		if err != nil {
			essentials.Die(err)
		}
		out := net.Apply(anydiff.NewConst(sample.Input), 1).Output()
		if anyvec.MaxIndex(out) == anyvec.MaxIndex(sample.Output) {
			correct++
		}
	}
	return float64(correct) / float64(samples.Len())
}

func envDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
