// Package cli implements the cssom command line.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/alecthomas/kong"

	"bennypowers.dev/cssom/internal/log"
)

const (
	name        = "cssom"
	description = "Match CSS values against registered custom property syntax."
)

// ErrCheckFailed is returned by the check command when any stylesheet has
// an Error diagnostic
var ErrCheckFailed = errors.New("check failed")

// CLI is the top-level command-line interface for cssom.
type CLI struct {
	LogLevel string `help:"Log verbosity (${enum})" name:"log-level" default:"warn" enum:"debug,info,warn,error"`

	Match    Match    `cmd:"" help:"Match a value against a syntax"`
	AttrType AttrType `cmd:"" name:"attr-type" help:"Report the type an attr() value presents"`
	Check    Check    `cmd:"" help:"Check stylesheets against their registered custom properties"`
	Version  Version  `cmd:"" help:"Print version information"`
}

// Run parses args and executes the selected command, writing its output
// to stdout. The exit function is called by kong for --help and usage
// errors.
func Run(ctx context.Context, exit func(code int), stdout io.Writer, args ...string) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(name),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stdout),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	previous := log.GetLevel()
	log.SetLevel(level)
	defer log.SetLevel(previous)

	return ktx.Run()
}
