package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luhtfiimanal/go-logring"
)

const cmdName = "logring"

func main() {
	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmdName, err)
		os.Exit(1)
	}
}

// app carries the resolved configuration into the subcommands.
type app struct {
	v     *viper.Viper
	cfg   Config
	log   zerolog.Logger
	stdin io.Reader
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdin: stdin}

	rootCmd := &cobra.Command{
		Use:           cmdName,
		Short:         "Inspect and modify a bounded on-disk record log",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := bindFlags(rootCmd.PersistentFlags(), a.v); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(
		a.pushCommand(),
		a.shiftCommand(),
		a.dumpCommand(),
		a.statCommand(),
		a.clearCommand(),
		a.resizeCommand(),
	)
	return rootCmd
}

func (a *app) init(stderr io.Writer) error {
	cfg, err := loadConfig(a.v)
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrapf(err, "log level %q", cfg.LogLevel)
	}
	a.cfg = cfg
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
	return nil
}

// withRing opens the configured log for the duration of fn.
func (a *app) withRing(fn func(r *logring.Ring) error) (err error) {
	r, err := logring.OpenWithOptions(a.cfg.File, a.cfg.Limit, a.cfg.options(a.log))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(r)
}
