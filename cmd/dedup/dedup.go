package dedup

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/trichner/strset/pkg/cfg"
	"github.com/trichner/strset/pkg/strset"
)

type cli struct {
	Count bool     `help:"Only print the number of distinct lines."`
	Dump  bool     `help:"Print the bucket table to stderr when done."`
	Files []string `arg:"" optional:"" help:"Input files, stdin if omitted."`
}

func Exec(ctx context.Context, args []string) {
	// kong expects only actual arguments and not the program itself
	args = args[1:]

	var flags cli

	k, err := kong.New(&flags, kong.Name("dedup"), kong.Description("Print each distinct input line once, in order of first appearance."))
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

	if err := run(&flags, s, os.Stdin, os.Stdout); err != nil {
		slog.Error("failed to deduplicate", "err", err)
		os.Exit(1)
	}

	if flags.Dump {
		if err := s.Dump(os.Stderr); err != nil {
			slog.Warn("cannot dump set", "err", err)
		}
	}
}

func Completions() *complete.Command {
	return &complete.Command{
		Args: predict.Files("*"),
	}
}

func run(opts *cli, s *strset.Set, stdin io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)

	if len(opts.Files) == 0 {
		if err := dedup(s, stdin, w, opts.Count); err != nil {
			return err
		}
	}

	for _, name := range opts.Files {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("cannot open input: %w", err)
		}
		err = dedup(s, f, w, opts.Count)
		f.Close()
		if err != nil {
			return fmt.Errorf("cannot read %q: %w", name, err)
		}
	}

	if opts.Count {
		fmt.Fprintf(w, "%d\n", s.Size())
	}
	slog.Debug("deduplicated input", "distinct", s.Size(), "capacity", s.Capacity())
	return w.Flush()
}

func dedup(s *strset.Set, in io.Reader, w io.Writer, quiet bool) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if s.Contains(line) {
			continue
		}
		if err := s.Add(line); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintln(w, line)
		}
	}
	return scanner.Err()
}
