// tasktune-oracle feeds raw prompt text to the rule-based oracle and prints
// the response. It exists for poking at the response rules without building
// a pipeline: pipe a rendered prompt in, see what comes back.
// Usage: tasktune-oracle [-input FILE] [-noise 0.1] [-seed 42]   (use - or stdin for the prompt)
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"tasktune/internal/oracle"
)

func main() {
	input := flag.String("input", "", "File containing the prompt text (- or empty for stdin)")
	noise := flag.Float64("noise", 0, "Intent misrecognition probability (0 = deterministic)")
	seed := flag.Int64("seed", 42, "Seed for the noise rng")
	flag.Parse()

	var data []byte
	var err error
	if *input == "" || *input == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(*input)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "read prompt: %v\n", err)
		os.Exit(1)
	}
	if len(data) == 0 {
		fmt.Fprintln(os.Stderr, "usage: tasktune-oracle [-input FILE] [-noise 0.1] [-seed 42]")
		fmt.Fprintln(os.Stderr, "       (pipe prompt text on stdin or pass -input)")
		flag.PrintDefaults()
		os.Exit(1)
	}

	o := oracle.New(oracle.Config{ErrorRate: *noise, Seed: *seed})
	fmt.Println(o.Respond(string(data)))
}
