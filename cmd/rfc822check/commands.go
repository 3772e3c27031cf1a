package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/moriyoshi/rfc822check/check"
	"github.com/moriyoshi/rfc822check/internal/textutil"
)

// readInputs expands "-" into the lines of stdin.
func readInputs(args []string, stdin io.Reader) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if arg != "-" {
			inputs = append(inputs, arg)
			continue
		}
		s := bufio.NewScanner(stdin)
		s.Buffer(nil, 1<<20)
		for s.Scan() {
			if l := textutil.Trim(s.Text()); l != "" {
				inputs = append(inputs, l)
			}
		}
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("failed to read inputs: %w", err)
		}
	}
	return inputs, nil
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// verdict maps a result onto the exit status of the check command.
func verdict(r *check.Result) int {
	switch {
	case r.Valid():
		return exitOK
	case !r.Grammar.IsAddress():
		return exitBadInput
	case r.Status == check.StatusInvalid:
		return exitInvalid
	}
	return exitUnparseable
}

type CheckCmd struct {
	Type   string   `name:"type" short:"t" required:"" help:"Grammar to check against." enum:"addrspec,mailbox,address,mailboxlist,addresslist,domain,ipv4,ipv6"`
	Inputs []string `arg:"" help:"Inputs to check; - reads one per line from standard input."`
}

// Run prints the canonical form of every input that is valid. The exit
// status is that of the first input that is not.
func (cmd *CheckCmd) Run(ctx context.Context, c *check.Checker, logger *slog.Logger) error {
	g, err := check.ParseGrammar(cmd.Type)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd.Inputs, os.Stdin)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "no inputs given")
		return exitCode(exitUsage)
	}
	results, err := c.CheckAll(ctx, inputs, g)
	if err != nil {
		return err
	}
	status := exitOK
	for i := range results {
		r := &results[i]
		v := verdict(r)
		if v == exitOK {
			fmt.Println(r.Canonical)
			continue
		}
		logger.Info("rejected", slog.String("input", textutil.EscapeNonPrintASCII(r.Input)), slog.String("status", r.Status.String()), slog.Any("error", r.Err))
		if status == exitOK {
			status = v
		}
	}
	if status != exitOK {
		return exitCode(status)
	}
	return nil
}

type ShowCmd struct {
	Inputs []string `arg:"" optional:"" help:"Inputs to show; - reads one per line from standard input."`
}

func (cmd *ShowCmd) Run(c *check.Checker) error {
	inputs, err := readInputs(cmd.Inputs, os.Stdin)
	if err != nil {
		return err
	}
	colour := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	w := colorable.NewColorableStdout()
	if !colour {
		w = colorable.NewNonColorable(w)
	}
	p := newPalette(colour)
	for _, input := range inputs {
		if err := writeOverview(w, p, c.Overview(input)); err != nil {
			return err
		}
	}
	return exitCode(exitInteractive)
}

type MessageCmd struct {
	Format string `name:"format" short:"f" help:"Output format." enum:"text,yaml,json" default:"text"`
	File   string `arg:"" default:"-" help:"Message file; - reads standard input."`
}

func (cmd *MessageCmd) Run(c *check.Checker) error {
	f, err := openInput(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()
	reports, err := c.CheckMessage(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}
	if err := writeHeaderReports(os.Stdout, cmd.Format, reports); err != nil {
		return err
	}
	for i := range reports {
		if !reports[i].Valid() {
			return exitCode(exitInvalid)
		}
	}
	return nil
}

type NormalizeCmd struct {
	File string `arg:"" default:"-" help:"Message file; - reads standard input."`
}

func (cmd *NormalizeCmd) Run(c *check.Checker) error {
	f, err := openInput(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(os.Stdout)
	if err := c.Normalize(w, f); err != nil {
		return fmt.Errorf("failed to normalize %s: %w", cmd.File, err)
	}
	return w.Flush()
}

type MboxCmd struct {
	Format string `name:"format" short:"f" help:"Output format." enum:"text,yaml,json" default:"text"`
	File   string `arg:"" default:"-" help:"Mailbox file; - reads standard input."`
}

func (cmd *MboxCmd) Run(ctx context.Context, c *check.Checker) error {
	f, err := openInput(cmd.File)
	if err != nil {
		return err
	}
	defer f.Close()
	reports, err := c.CheckMailbox(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.File, err)
	}
	if err := writeMessageReports(os.Stdout, cmd.Format, reports); err != nil {
		return err
	}
	for i := range reports {
		if !reports[i].Valid() {
			return exitCode(exitInvalid)
		}
	}
	return nil
}
