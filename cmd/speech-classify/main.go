// Command speech-classify runs one WAV clip through a
// trained network and prints the per-class scores.
package main

import (
	"flag"
	"fmt"
	"os"

	speechcommands "github.com/rebryk/SPbAU-Speech-Recognition"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"

	// Register conv layer deserializers.
	_ "github.com/unixpickle/anynet/anyconv"
)

func main() {
	var netFile string
	flag.StringVar(&netFile, "net", "speech_net", "network file")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: speech-classify [flags] <clip.wav>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var network anynet.Net
	if err := serializer.LoadAny(netFile, &network); err != nil {
		essentials.Die(err)
	}

	clip, err := speechcommands.ReadClip(flag.Arg(0))
	if err != nil {
		essentials.Die(err)
	}
	sgram, err := speechcommands.DefaultPipeline().Apply(clip)
	if err != nil {
		essentials.Die(err)
	}

	creator := anyvec32.CurrentCreator()
	out := network.Apply(anydiff.NewConst(sgram.Vector(creator)), 1).Output()

	vocab := speechcommands.Commands()
	scores := out.Data().([]float32)
	for i, class := range vocab {
		fmt.Printf("%10s  %8.4f\n", class, scores[i])
	}
	fmt.Println("Predicted:", vocab[anyvec.MaxIndex(out)])
}
