package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/gradle-class-finder/internal/cli"
	cferrors "github.com/mvp-joe/gradle-class-finder/internal/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	interrupted := ctx.Err() != nil
	cancel()

	if err == nil {
		return
	}
	if interrupted {
		os.Exit(130)
	}
	if cferrors.GetCode(err) != "" {
		fmt.Fprintln(os.Stderr, cferrors.UserMessage(err))
	} else {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}
