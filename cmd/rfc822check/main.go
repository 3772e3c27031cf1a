package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/moriyoshi/rfc822check/check"
)

// Exit statuses of the check command. Interactive output always ends
// with exitInteractive so that scripts cannot mistake it for a verdict.
const (
	exitOK          = 0
	exitUsage       = 1
	exitInteractive = 40
	exitUnparseable = 41
	exitInvalid     = 42
	exitBadInput    = 43
)

type exitCode int

func (ec exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(ec))
}

type Globals struct {
	LogLevel    slog.Level `name:"log-level" help:"Log level." env:"RFC822CHECK_LOG_LEVEL" default:"WARN" enum:"DEBUG,INFO,WARN,ERROR"`
	Rules       string     `name:"rules" help:"Path to the header rules file used by the message commands." env:"RFC822CHECK_RULES" optional:""`
	Lenient     bool       `name:"lenient" help:"Accept a trailing dot after domain names." env:"RFC822CHECK_LENIENT" default:"false"`
	IDNA        bool       `name:"idna" help:"Convert internationalized domain names to ASCII before checking them." env:"RFC822CHECK_IDNA" default:"false"`
	Concurrency int        `name:"concurrency" help:"Number of inputs checked at once." env:"RFC822CHECK_CONCURRENCY" default:"0"`
}

type CLI struct {
	Globals

	Check     CheckCmd     `cmd:"" help:"Check inputs against one grammar and print their canonical form."`
	Show      ShowCmd      `cmd:"" default:"withargs" help:"Show how every grammar judges the inputs."`
	Message   MessageCmd   `cmd:"" help:"Check the address header fields of a message."`
	Normalize NormalizeCmd `cmd:"" help:"Rewrite the valid address header fields of a message in canonical form."`
	Mbox      MboxCmd      `cmd:"" help:"Check the address header fields of every message in an mbox file."`
}

func (CLI *CLI) initLogger(*kong.Context) *slog.Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stderr.Fd()) {
		handler = tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{Level: CLI.LogLevel})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: CLI.LogLevel})
	}
	return slog.New(handler)
}

func (CLI *CLI) initChecker(kongCtx *kong.Context, logger *slog.Logger) *check.Checker {
	concurrency := CLI.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	options := []check.OptionFunc{
		check.WithLogger(logger),
		check.WithLenient(CLI.Lenient),
		check.WithIDNA(CLI.IDNA),
		check.WithConcurrency(concurrency),
	}
	var checker *check.Checker
	var err error
	if CLI.Rules != "" {
		checker, err = check.NewCheckerFromYAMLFile(CLI.Rules, options...)
	} else {
		checker, err = check.NewChecker(nil, options...)
	}
	if err != nil {
		kongCtx.FatalIfErrorf(err)
	}
	return checker
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	var CLI CLI
	kongCtx := kong.Parse(
		&CLI,
		kong.Name("rfc822check"),
		kong.Description("Parse and validate e-mail addresses, domain names and IP addresses."),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	logger := CLI.initLogger(kongCtx)
	checker := CLI.initChecker(kongCtx, logger)
	err := kongCtx.Run(checker, logger)
	var ec exitCode
	if errors.As(err, &ec) {
		os.Exit(int(ec))
	}
	kongCtx.FatalIfErrorf(err)
}
