// Package cmdreg dispatches the first program argument to a registered
// sub-command and provides shell completion for the command names.
package cmdreg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/posener/complete/v2"
)

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
)

// CommandFunc runs a command. args[0] is the command name, kong style
// parsers should skip it.
type CommandFunc func(ctx context.Context, args []string)

type command struct {
	name        string
	description string
	fn          CommandFunc
	completion  *complete.Command
}

type CommandRegistry struct {
	programName string
	commands    map[string]*command
}

type Option func(*CommandRegistry)

func WithProgramName(name string) Option {
	return func(r *CommandRegistry) {
		r.programName = name
	}
}

type CommandOption func(*command)

// WithCompletion sets the completion tree for a command's flags and
// arguments.
func WithCompletion(c *complete.Command) CommandOption {
	return func(cmd *command) {
		cmd.completion = c
	}
}

func WithDescription(d string) CommandOption {
	return func(cmd *command) {
		cmd.description = d
	}
}

func New(opts ...Option) *CommandRegistry {
	r := &CommandRegistry{
		programName: filepath.Base(os.Args[0]),
		commands:    make(map[string]*command),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// RegisterFunc registers fn under name, replacing any previous command.
func (r *CommandRegistry) RegisterFunc(name string, fn CommandFunc, opts ...CommandOption) {
	cmd := &command{name: name, fn: fn}
	for _, o := range opts {
		o(cmd)
	}
	r.commands[name] = cmd
}

// Exec handles completion requests and otherwise runs the command named by
// args[1]. It exits the process if no such command exists.
func (r *CommandRegistry) Exec(ctx context.Context, args []string) {
	// exits if the shell asked for completions
	r.Completion().Complete(r.programName)

	if err := r.Run(ctx, args); err != nil {
		slog.Error("cannot run command", "err", err)
		r.PrintHelp(os.Stderr)
		os.Exit(1)
	}
}

// Run runs the command named by args[1] with args[1:].
func (r *CommandRegistry) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return ErrNoCommand
	}
	cmd, ok := r.commands[args[1]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[1])
	}
	cmd.fn(ctx, args[1:])
	return nil
}

// Completion returns the completion tree of all registered commands.
func (r *CommandRegistry) Completion() *complete.Command {
	root := &complete.Command{Sub: make(map[string]*complete.Command, len(r.commands))}
	for name, cmd := range r.commands {
		c := cmd.completion
		if c == nil {
			c = &complete.Command{}
		}
		root.Sub[name] = c
	}
	return root
}

func (r *CommandRegistry) PrintHelp(w io.Writer) {
	names := make([]string, 0, len(r.commands))
	for n := range r.commands {
		names = append(names, n)
	}
	slices.Sort(names)

	fmt.Fprintf(w, "Usage: %s <command> [args...]\n\nCommands:\n", r.programName)
	for _, n := range names {
		if d := r.commands[n].description; d != "" {
			fmt.Fprintf(w, "  %-10s %s\n", n, d)
		} else {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
}
