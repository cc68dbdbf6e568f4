// Package prompt supplies the interactive decision points of a run:
// the per-file review and the accept/retry confirmations. The rest of
// the pipeline only sees the Decider interface, so tests and
// unattended runs inject their own.
package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	errs "github.com/trimux/trimux/internal/errors"
)

// ReviewDecision is the user's choice on the plan review screen.
type ReviewDecision int

const (
	// DecisionNext skips to the next file without transcoding.
	DecisionNext ReviewDecision = iota
	// DecisionReencode executes the plan.
	DecisionReencode
	// DecisionQuit aborts the whole run.
	DecisionQuit
)

// Decider answers the pipeline's questions.
type Decider interface {
	// ReviewPlan is asked once per file after the dry-run review.
	ReviewPlan() (ReviewDecision, error)
	// Confirm asks a yes/no question (accept output, retry after failure).
	Confirm(question string) (bool, error)
}

// New picks a Decider for the session: auto-accept when requested,
// auto-skip when stdin is not a terminal, interactive otherwise.
func New(autoAccept bool) Decider {
	if autoAccept {
		return AutoDecider{Accept: true}
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return AutoDecider{Accept: false}
	}
	return &TerminalDecider{in: os.Stdin, out: os.Stdout}
}

// AutoDecider answers without a terminal. Accept true reencodes and
// confirms everything; false reviews every file but changes nothing.
type AutoDecider struct {
	Accept bool
}

func (d AutoDecider) ReviewPlan() (ReviewDecision, error) {
	if d.Accept {
		return DecisionReencode, nil
	}
	return DecisionNext, nil
}

func (d AutoDecider) Confirm(string) (bool, error) {
	return d.Accept, nil
}

// TerminalDecider reads single raw keystrokes from a terminal.
type TerminalDecider struct {
	in  *os.File
	out io.Writer
}

// NewTerminalDecider wires a decider to explicit streams.
func NewTerminalDecider(in *os.File, out io.Writer) *TerminalDecider {
	return &TerminalDecider{in: in, out: out}
}

func (d *TerminalDecider) ReviewPlan() (ReviewDecision, error) {
	for {
		fmt.Fprintln(d.out, "Press N for next file, D/R to reencode, Q/X to quit.")
		key, err := d.readKey()
		if err != nil {
			return DecisionQuit, err
		}
		if decision, ok := parseReviewKey(key); ok {
			return decision, nil
		}
	}
}

func (d *TerminalDecider) Confirm(question string) (bool, error) {
	fmt.Fprintf(d.out, "%s (Y/N)\n", question)
	for {
		key, err := d.readKey()
		if err != nil {
			return false, err
		}
		if answer, ok := parseConfirmKey(key); ok {
			return answer, nil
		}
	}
}

// readKey puts the terminal into raw mode for exactly one keystroke.
func (d *TerminalDecider) readKey() (byte, error) {
	fd := int(d.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, errs.NewIOError("failed to enter raw terminal mode", err)
	}
	defer func() { _ = term.Restore(fd, state) }()

	var buf [1]byte
	if _, err := d.in.Read(buf[:]); err != nil {
		return 0, errs.NewIOError("failed to read keystroke", err)
	}
	return buf[0], nil
}

// parseReviewKey maps a keystroke to a review decision. Ctrl-C quits.
func parseReviewKey(key byte) (ReviewDecision, bool) {
	switch lower(key) {
	case 'n':
		return DecisionNext, true
	case 'd', 'r':
		return DecisionReencode, true
	case 'q', 'x', 0x03:
		return DecisionQuit, true
	default:
		return 0, false
	}
}

// parseConfirmKey maps a keystroke to a yes/no answer. Ctrl-C is no.
func parseConfirmKey(key byte) (bool, bool) {
	switch lower(key) {
	case 'y':
		return true, true
	case 'n', 0x03:
		return false, true
	default:
		return false, false
	}
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
