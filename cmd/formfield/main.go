// Command formfield checks, renders and prompts for textarea fields defined
// in YAML/JSON files or OpenAPI component schemas.
//
// Settings are read, highest priority first, from flags, FORMFIELD_* environment
// variables (FORMFIELD_LOG_LEVEL, FORMFIELD_LOCALE, ...) and an optional
// .formfield.yaml in the working directory.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command tree under a context canceled by SIGINT/SIGTERM,
// so long-running commands such as check --watch release their resources.
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(nil)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
