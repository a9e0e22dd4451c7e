// Command salz compresses and decompresses files with the SALZ block
// format.
//
//	salz [-b bits] input output
//	salz -d input output
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/andybalholm/salz"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger()

func main() {
	app := &cli.App{
		Name:      "salz",
		Usage:     "compress or decompress a file (by default, compress)",
		ArgsUsage: "<input> <output>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "decompress",
				Aliases: []string{"d"},
				Usage:   "decompress instead of compressing",
			},
			&cli.IntFlag{
				Name:    "block-bits",
				Aliases: []string{"b"},
				Usage:   "log2 of the block size (10..24)",
				Value:   16,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log per-phase encoder timings",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("salz failed")
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected <input> and <output> arguments")
	}
	if c.Bool("verbose") {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	in, err := os.Open(c.Args().Get(0))
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return err
	}
	defer out.Close()

	if c.Bool("decompress") {
		return decompress(in, out)
	}
	bits := c.Int("block-bits")
	if bits < 10 || bits > 24 {
		return fmt.Errorf("invalid block size: 2^%d", bits)
	}
	return compress(in, out, 1<<bits, c.Bool("verbose"))
}

func compress(in io.Reader, out io.Writer, blockSize int, verbose bool) error {
	bw := bufio.NewWriter(out)
	cw := &countingWriter{w: bw}
	w := &salz.Writer{Dest: cw, BlockSize: blockSize}
	var timings salz.Timings
	if verbose {
		w.Timings = &timings
	}

	start := time.Now()
	read := int64(0)
	buf := make([]byte, blockSize)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			read += int64(n)
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
			if verbose {
				log.Debug().
					Dur("sort", timings.Sort).
					Dur("psv_nsv", timings.PSVNSV).
					Dur("factor", timings.Factor).
					Dur("parse", timings.Parse).
					Dur("emit", timings.Emit).
					Msg("block encoded")
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	ratio := 0.0
	if cw.n > 0 {
		ratio = float64(read) / float64(cw.n)
	}
	log.Info().
		Int64("in", read).
		Int64("out", cw.n).
		Float64("ratio", ratio).
		Dur("elapsed", time.Since(start)).
		Msg("compressed")
	return nil
}

func decompress(in io.Reader, out io.Writer) error {
	start := time.Now()
	n, err := io.Copy(out, salz.NewReader(in))
	if err != nil {
		return err
	}
	log.Info().
		Int64("out", n).
		Dur("elapsed", time.Since(start)).
		Msg("decompressed")
	return nil
}

// countingWriter tracks how many compressed bytes reach the output.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
