package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/manifoldco/promptui"

	"github.com/trichner/strset/pkg/cfg"
	"github.com/trichner/strset/pkg/strset"
)

const usage = `commands:
  add <value>...   add values
  rm <value>...    remove values
  has <value>      test membership
  size             number of values
  ls               list values
  dump             print the bucket table
  help             this text
  quit             leave the shell
`

var errQuit = errors.New("quit")

type cli struct{}

// lineReader yields one line of user input per call.
type lineReader interface {
	ReadLine() (string, error)
}

type promptReader struct {
	prompt promptui.Prompt
}

func (p *promptReader) ReadLine() (string, error) {
	return p.prompt.Run()
}

func Exec(ctx context.Context, args []string) {
	// kong expects only actual arguments and not the program itself
	args = args[1:]

	var flags cli

	k, err := kong.New(&flags, kong.Name("shell"), kong.Description("Interactively edit a string set."))
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

	in := &promptReader{prompt: promptui.Prompt{Label: "strset"}}
	if err := run(s, in, os.Stdout); err != nil {
		slog.Error("shell failed", "err", err)
		os.Exit(1)
	}
}

func run(s *strset.Set, in lineReader, out io.Writer) error {
	fmt.Fprint(out, usage)
	for {
		line, err := in.ReadLine()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("cannot read command: %w", err)
		}

		err = execute(s, strings.Fields(line), out)
		if errors.Is(err, errQuit) {
			return nil
		} else if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func execute(s *strset.Set, fields []string, out io.Writer) error {
	if len(fields) == 0 {
		return nil
	}

	cmd, values := fields[0], fields[1:]
	switch cmd {
	case "add":
		for _, v := range values {
			if err := s.Add(v); err != nil {
				return err
			}
		}
		fmt.Fprintf(out, "size: %d\n", s.Size())
	case "rm":
		for _, v := range values {
			removed, err := s.Remove(v)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(out, "not found: %s\n", v)
			}
		}
		fmt.Fprintf(out, "size: %d\n", s.Size())
	case "has":
		if len(values) != 1 {
			return fmt.Errorf("has expects exactly one value, got %d", len(values))
		}
		fmt.Fprintln(out, s.Contains(values[0]))
	case "size":
		fmt.Fprintln(out, s.Size())
	case "ls":
		for v := range s.All() {
			fmt.Fprintln(out, v)
		}
	case "dump":
		return s.Dump(out)
	case "help":
		fmt.Fprint(out, usage)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
