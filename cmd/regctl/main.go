package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/aussiebroadwan/quizbank/internal/regctl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(regctl.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
