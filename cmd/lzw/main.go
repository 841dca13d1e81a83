// Package main provides the command line for driving the lzw codec
// against a file or standard input/output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/hhrutter/golzw/log"
	"github.com/hhrutter/golzw/lzw"
	"github.com/hhrutter/golzw/lzwio"
)

var (
	encode, decode bool
	minSize        int
	bitOrderFlag   string
	flavorFlag     string
	verbose        bool
)

func init() {
	widthUsage := "minimum code size, 2..12"
	flag.IntVar(&minSize, "w", 8, widthUsage)
	flag.IntVar(&minSize, "width", 8, widthUsage)

	bitsUsage := "bit order: m|most (TIFF/PDF) or l|least (GIF)"
	flag.StringVar(&bitOrderFlag, "b", "m", bitsUsage)
	flag.StringVar(&bitOrderFlag, "bits", "m", bitsUsage)

	strategyUsage := "code-size-bump flavor: gif or tiff"
	flag.StringVar(&flavorFlag, "s", "gif", strategyUsage)
	flag.StringVar(&flavorFlag, "strategy", "gif", strategyUsage)

	flag.BoolVar(&encode, "e", false, "encode raw bytes into an LZW stream")
	flag.BoolVar(&decode, "d", false, "decode an LZW stream into raw bytes")
	flag.BoolVar(&verbose, "v", false, "turn on logging")
	flag.BoolVar(&verbose, "verbose", false, "turn on logging")
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lzw {-e|-d} [-w width] [-b m|l] [-s gif|tiff] file|-")
	flag.PrintDefaults()
}

func parseBitOrder(s string) (lzw.BitOrder, error) {
	switch s {
	case "m", "most":
		return lzw.MSB, nil
	case "l", "least":
		return lzw.LSB, nil
	default:
		return 0, errors.Errorf("invalid bit order %q, want m|most|l|least", s)
	}
}

func parseFlavor(s string) (bool, error) {
	switch s {
	case "gif":
		return false, nil
	case "tiff":
		return true, nil
	default:
		return false, errors.Errorf("invalid strategy %q, want gif|tiff", s)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func run() error {
	flag.Usage = usage
	flag.Parse()

	if verbose {
		if err := log.SetDefaultZapLoggers(); err != nil {
			return errors.Wrap(err, "configuring logger")
		}
	} else {
		log.DisableLoggers()
	}

	if flag.NArg() != 1 {
		usage()
		return errors.New("expected exactly one file argument (or \"-\")")
	}
	if encode == decode {
		return errors.New("exactly one of -e or -d must be given")
	}

	order, err := parseBitOrder(bitOrderFlag)
	if err != nil {
		return err
	}
	tiff, err := parseFlavor(flavorFlag)
	if err != nil {
		return err
	}

	path := flag.Arg(0)
	in, err := openInput(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer in.Close()

	opts := []lzwio.Option{lzwio.WithBitOrder(order), lzwio.WithMinCodeSize(minSize)}
	if tiff {
		opts = append(opts, lzwio.WithTIFFSizeSwitch())
	}

	if encode {
		log.Info.Printf("encoding %s: width=%d bits=%s strategy=%s\n", path, minSize, order, flavorFlag)
		w := lzwio.NewWriter(os.Stdout, opts...)
		if _, err := io.Copy(w, in); err != nil {
			return errors.Wrap(err, "encoding")
		}
		return w.Close()
	}

	log.Info.Printf("decoding %s: width=%d bits=%s strategy=%s\n", path, minSize, order, flavorFlag)
	r := lzwio.NewReader(in, opts...)
	_, err = io.Copy(os.Stdout, r)
	return errors.Wrap(err, "decoding")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "lzw: panic: %v\n", r)
			os.Exit(128)
		}
	}()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "lzw: %v\n", err)
		os.Exit(1)
	}
}
