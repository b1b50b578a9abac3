package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"bennypowers.dev/cssom/internal/cli"
	"bennypowers.dev/cssom/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.Run(ctx, os.Exit, os.Stdout, os.Args[1:]...)
	if errors.Is(err, cli.ErrCheckFailed) {
		os.Exit(1)
	}
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
