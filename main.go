package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Exit).ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Send()
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}
