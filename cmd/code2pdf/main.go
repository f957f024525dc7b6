package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ErrUsage marks command-line mistakes: unknown flags, bad arguments.
var ErrUsage = errors.New("invalid usage")

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain executes the command tree and maps the outcome to an exit code.
func runMain(args []string, env *Environment) int {
	// maxprocs.Set only fails on an invalid GOMAXPROCS, where runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(maxprocsLogger(args, env)))
	defer undo()

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd := newRootCmd(env)
	cmd.SetArgs(args)
	cmd.SetOut(env.Stdout)
	cmd.SetErr(env.Stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(env.Stderr, "error:", errorWithHint(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// maxprocsLogger prints automaxprocs decisions in verbose mode only.
func maxprocsLogger(args []string, env *Environment) func(string, ...any) {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "-v" || arg == "--verbose" {
			return func(format string, a ...any) {
				fmt.Fprintf(env.Stderr, format+"\n", a...)
			}
		}
	}
	return func(string, ...any) {}
}
