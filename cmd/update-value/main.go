// Command update-value rewrites the value of one parameter in an existing
// parameter file:
//
//	update-value parameters.txt scaleI "0 0 0"
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/simarray/internal/cli"
	"github.com/specialistvlad/simarray/internal/sweep"
	"github.com/specialistvlad/simarray/internal/updater"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Stdout, os.Stderr, afero.NewOsFs(), os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(outW, errW io.Writer, fsys afero.Fs, args []string) error {
	flags := pflag.NewFlagSet("update-value", pflag.ContinueOnError)
	flags.SetOutput(outW)
	// Options come first; everything from PARAM_FILE on is positional, so
	// values such as -0.5 are not read as flags.
	flags.SetInterspersed(false)
	regex := flags.Bool("regex", false, "Treat the parameter name as a regular expression matched at the start of each line.")
	verbose := flags.Bool("verbose", false, "Report how many lines were rewritten.")
	flags.Usage = func() {
		fmt.Fprint(outW, `
Usage:
  update-value [options] PARAM_FILE NAME VALUE

Rewrites every line of PARAM_FILE that starts with NAME so that everything
after its first space becomes VALUE. Quote VALUE if it holds several words.
Options must come before PARAM_FILE; negative values need no escaping.

Options:
`)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &cli.ExitError{Code: 2, Message: err.Error(), Err: err}
	}
	if flags.NArg() != 3 {
		err := fmt.Errorf("%w: there should be three arguments, got %d", sweep.ErrConfiguration, flags.NArg())
		return &cli.ExitError{Code: 2, Message: err.Error(), Err: err}
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(errW, &slog.HandlerOptions{Level: level}))

	path, name, value := flags.Arg(0), flags.Arg(1), flags.Arg(2)
	changed, err := updater.Update(fsys, path, name, value, updater.Options{Regex: *regex})
	if err != nil {
		return err
	}

	if changed == 0 {
		logger.Warn("Parameter not found, file left unchanged.", "file", path, "parameter", name)
		return nil
	}
	logger.Info("Parameter updated.", "file", path, "parameter", name, "lines", changed)
	return nil
}
