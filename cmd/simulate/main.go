package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	simulatecmd "github.com/Estagiarius/simulajuls/internal/cmd/simulate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := simulatecmd.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
