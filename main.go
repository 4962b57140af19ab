package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := realMain(
		ctx,
		os.Stdin,
		os.Stdout,
		os.Stderr,
		os.Args,
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

func realMain(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	args []string,
) error {
	exec := args[0]

	fs := flag.NewFlagSet(exec, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flagSilent        bool
		flagIgnore        int
		flagIdentityStart bool
		flagVerbose       bool
	)

	fs.BoolVar(&flagSilent, "silent", false, "replace unparseable lines with the operation's identity instead of failing")
	fs.IntVar(&flagIgnore, "ignore", 0, "skip this many lines at the beginning of input")
	fs.BoolVar(&flagIdentityStart, "identity-start", false, "seed the fold with the operation's identity even for sub and div")
	fs.BoolVar(&flagVerbose, "v", false, "debug logging on stderr")

	run := func(op Operation) func(context.Context, []string) error {
		return func(_ context.Context, _ []string) error {
			reducer := Reducer{
				Op:            op,
				Silent:        flagSilent,
				Ignore:        flagIgnore,
				IdentityStart: flagIdentityStart,
				Logger:        newLogger(stderr, flagVerbose),
			}

			result, err := reducer.Run(stdin)
			if err != nil {
				return err
			}

			fmt.Fprintln(stdout, result)

			return nil
		}
	}

	sumCmd := &ffcli.Command{
		Name:      "sum",
		ShortHelp: "Add all inputs (identity 0)",
		Exec:      run(OpSum),
	}

	addCmd := &ffcli.Command{
		Name:      "add",
		ShortHelp: "Alias for sum",
		Exec:      run(OpSum),
	}

	subCmd := &ffcli.Command{
		Name:      "sub",
		ShortHelp: "Subtract the remaining inputs from the first (identity 0)",
		Exec:      run(OpSub),
	}

	mulCmd := &ffcli.Command{
		Name:      "mul",
		ShortHelp: "Multiply all inputs (identity 1)",
		Exec:      run(OpMul),
	}

	productCmd := &ffcli.Command{
		Name:      "product",
		ShortHelp: "Alias for mul",
		Exec:      run(OpMul),
	}

	divCmd := &ffcli.Command{
		Name:      "div",
		ShortHelp: "Divide the first input by the remaining ones (identity 1)",
		Exec:      run(OpDiv),
	}

	rootCmd := &ffcli.Command{
		ShortUsage:  fmt.Sprintf("%v [flags] <operation>", exec),
		FlagSet:     fs,
		Subcommands: []*ffcli.Command{sumCmd, addCmd, subCmd, mulCmd, productCmd, divCmd},
		Exec: func(_ context.Context, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown operation %q", args[0])
			}

			return flag.ErrHelp
		},
	}

	return rootCmd.ParseAndRun(ctx, args[1:])
}

func newLogger(stderr io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := stderr.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:   level,
		NoColor: noColor,
	}))
}
