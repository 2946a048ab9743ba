package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"syscall"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// The run then stops after the record in flight and still writes what it has.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	app := &app{
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	err := newRootCmd(app).ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}
