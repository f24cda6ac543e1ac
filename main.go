package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"droppables/core"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCommand().ExecuteContext(ctx)
	os.Exit(exitCode(ctx, err))
}

// exitError carries a process exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return core.ExitCodeName(e.code)
}

func exitCode(ctx context.Context, err error) int {
	if err == nil {
		return core.ExitCodeSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return core.ExitCodeSIGINT
	}
	if code := core.GetErrorCode(err); code != "" {
		fmt.Fprintf(os.Stderr, "Configuration error [%s]: %v\n", code, err)
		return core.ExitCodeError
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	return core.ExitCodeError
}
