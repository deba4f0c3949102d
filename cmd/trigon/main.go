// Command trigon classifies a single triangle from the command line.
//
//	trigon [-fractional] a b c
//
// It prints the kind and exits 0, prints "invalid: <reason>" and exits 1
// when the sides do not form a triangle, and exits 2 on usage errors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/linnemanlabs/trigon/internal/classify"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trigon", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fractional := fs.Bool("fractional", false, "accept side lengths with a fractional part")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: trigon [-fractional] a b c")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return exitUsage
	}

	v, err := classify.Evaluate([3]string{fs.Arg(0), fs.Arg(1), fs.Arg(2)}, *fractional)
	if err != nil {
		fmt.Fprintln(stderr, "trigon:", err)
		if errors.Is(err, classify.ErrFractionalDisabled) {
			fmt.Fprintln(stderr, "trigon: pass -fractional to accept non-integer sides")
		}
		return exitUsage
	}

	if !v.Valid {
		fmt.Fprintf(stdout, "invalid: %s\n", v.Reason)
		return exitInvalid
	}
	fmt.Fprintln(stdout, v.Kind)
	return exitOK
}
