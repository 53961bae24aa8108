package hashsum

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

	"github.com/trichner/strset/pkg/hashers"
)

type cli struct {
	Algo   string   `help:"Hash function, one of djb2 or xxhash." default:"djb2"`
	Values []string `arg:"" optional:"" help:"Strings to hash, lines from stdin if omitted."`
}

func Exec(ctx context.Context, args []string) {
	// kong expects only actual arguments and not the program itself
	args = args[1:]

	var flags cli

	k, err := kong.New(&flags, kong.Name("hashsum"), kong.Description("Print the hash of strings."))
	if err != nil {
		log.Fatalf("cannot parse arguments: %v", err)
	}
	_, err = k.Parse(args)
	if err != nil {
		log.Fatalf("cannot parse arguments: %v", err)
	}

	if err := run(&flags, os.Stdin, os.Stdout); err != nil {
		slog.Error("failed to hash", "err", err)
		os.Exit(1)
	}
}

func Completions() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"algo": predict.Set(hashers.Names()),
		},
	}
}

func run(opts *cli, in io.Reader, out io.Writer) error {
	h, err := hashers.Lookup(opts.Algo)
	if err != nil {
		return err
	}

	if len(opts.Values) > 0 {
		for _, v := range opts.Values {
			fmt.Fprintf(out, "%d\t%s\n", h(v), v)
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		v := scanner.Text()
		fmt.Fprintf(out, "%d\t%s\n", h(v), v)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cannot read input: %w", err)
	}
	return nil
}
