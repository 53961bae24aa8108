package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/trichner/strset/cmd/dedup"
	"github.com/trichner/strset/cmd/demo"
	"github.com/trichner/strset/cmd/hashsum"
	"github.com/trichner/strset/cmd/shell"
	"github.com/trichner/strset/pkg/cfg"
	"github.com/trichner/strset/pkg/cmdreg"
)

func main() {
	level := new(slog.LevelVar)
	tintOpts := &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, tintOpts)))

	config := &cfg.ConfigProvider{}
	if conf, err := config.LoadSetConfig(); err != nil {
		slog.Warn("cannot load config", "err", err)
	} else if l, err := conf.Level(); err != nil {
		slog.Warn("cannot set log level", "err", err)
	} else {
		level.Set(l)
	}

	r := cmdreg.New(cmdreg.WithProgramName("strset"))

	r.RegisterFunc("dedup", dedup.Exec,
		cmdreg.WithDescription("print distinct input lines"), cmdreg.WithCompletion(dedup.Completions()))
	r.RegisterFunc("demo", demo.Exec, cmdreg.WithDescription("run a sample session"))
	r.RegisterFunc("hashsum", hashsum.Exec,
		cmdreg.WithDescription("print string hashes"), cmdreg.WithCompletion(hashsum.Completions()))
	r.RegisterFunc("shell", shell.Exec, cmdreg.WithDescription("edit a set interactively"))

	r.RegisterFunc("help", help(r))

	ctx := cfg.WithConfigProvider(context.Background(), config)
	r.Exec(ctx, os.Args)
}

func help(r *cmdreg.CommandRegistry) cmdreg.CommandFunc {
	return func(_ context.Context, args []string) {
		r.PrintHelp(os.Stdout)
	}
}
