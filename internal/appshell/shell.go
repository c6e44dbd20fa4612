package appshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Main runs run with a context canceled by SIGINT/SIGTERM and exits with its
// code. The first signal lets the run save its counts and stop; a second one
// exits at once.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Fprintln(os.Stderr, "interrupt: saving counts, press Ctrl-C again to abort")
		cancel()
		<-sigs
		os.Exit(130)
	}()

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"--help"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = 130
	}

	signal.Stop(sigs)
	cancel()
	os.Exit(code)
}
