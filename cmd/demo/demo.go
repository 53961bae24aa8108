package demo

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/trichner/strset/pkg/cfg"
	"github.com/trichner/strset/pkg/strset"
)

var (
	hashSamples = []string{"", "Hello, world!", "Hello, world!", "Mazuh"}
	weekdays    = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

type cli struct {
	Dump bool `help:"Print the bucket table after each step."`
}

func Exec(ctx context.Context, args []string) {
	// kong expects only actual arguments and not the program itself
	args = args[1:]

	var flags cli

	k, err := kong.New(&flags, kong.Name("demo"), kong.Description("Run a sample session against a string set."))
	if err != nil {
		log.Fatalf("cannot parse arguments: %v", err)
	}
	_, err = k.Parse(args)
	if err != nil {
		log.Fatalf("cannot parse arguments: %v", err)
	}

	s, err := cfg.NewSet(ctx)
	if err != nil {
		slog.Error("cannot create set", "err", err)
		os.Exit(1)
	}
	defer s.Close()

	if err := run(&flags, s, os.Stdout); err != nil {
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(opts *cli, s *strset.Set, out io.Writer) error {
	h := s.Hasher()
	for _, v := range hashSamples {
		fmt.Fprintf(out, "Hash of '%s': %d\n", v, h(v))
	}

	for _, d := range weekdays {
		if err := s.Add(d); err != nil {
			return fmt.Errorf("cannot add %q: %w", d, err)
		}
	}
	slog.Info("added weekdays", "size", s.Size())
	if err := dump(opts, s, out); err != nil {
		return err
	}

	removed, err := s.Remove("Saturday")
	if err != nil {
		return fmt.Errorf("cannot remove: %w", err)
	}
	slog.Info("removed value", "value", "Saturday", "removed", removed, "size", s.Size())

	for i := 0; i < 3; i++ {
		if err := s.Add("Monday"); err != nil {
			return fmt.Errorf("cannot add duplicate: %w", err)
		}
	}
	slog.Info("added duplicates", "value", "Monday", "size", s.Size())
	if err := dump(opts, s, out); err != nil {
		return err
	}

	it := s.Iterator()
	defer it.Close()
	fmt.Fprintf(out, "Set values (%d):\n", s.Size())
	for it.Next() {
		fmt.Fprintf(out, "  %s\n", it.Value())
	}
	return nil
}

func dump(opts *cli, s *strset.Set, out io.Writer) error {
	if !opts.Dump {
		return nil
	}
	return s.Dump(out)
}
