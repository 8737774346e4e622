package conflict

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Resolution is the outcome of a conflict prompt.
type Resolution int

const (
	// Cancel aborts the run without extracting anything.
	Cancel Resolution = iota
	// Overwrite replaces the existing archive.
	Overwrite
	// AddCounter writes a counter-suffixed archive next to the existing one.
	AddCounter
)

// String returns the resolution's name.
func (r Resolution) String() string {
	switch r {
	case Overwrite:
		return "overwrite"
	case AddCounter:
		return "counter"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// ParseResolution maps a policy name to a Resolution.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite":
		return Overwrite, nil
	case "counter", "add-counter":
		return AddCounter, nil
	case "cancel":
		return Cancel, nil
	default:
		return Cancel, fmt.Errorf("unknown conflict resolution %q", s)
	}
}

// Choice is one option offered to the user.
type Choice struct {
	Key        string
	Label      string
	Resolution Resolution
}

// Choices lists the options in prompt order.
var Choices = []Choice{
	{Key: "1", Label: "Overwrite existing file", Resolution: Overwrite},
	{Key: "2", Label: "Add counter to create new file", Resolution: AddCounter},
	{Key: "3", Label: "Cancel operation", Resolution: Cancel},
}

// DecisionProvider chooses how to handle an existing output file.
type DecisionProvider interface {
	Decide(ctx context.Context, existing string) Resolution
}

// FixedProvider always returns the same resolution.
type FixedProvider Resolution

// Decide implements DecisionProvider.
func (p FixedProvider) Decide(context.Context, string) Resolution {
	return Resolution(p)
}

// LineProvider prompts on a text stream and reads one answer per line.
// Invalid answers re-prompt until a valid one arrives.
type LineProvider struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineProvider creates a LineProvider reading from in and writing the
// prompt to out.
func NewLineProvider(in io.Reader, out io.Writer) *LineProvider {
	return &LineProvider{in: bufio.NewReader(in), out: out}
}

// Decide implements DecisionProvider. End of input, a read error or a
// cancelled context yield Cancel.
func (p *LineProvider) Decide(ctx context.Context, existing string) Resolution {
	fmt.Fprintf(p.out, "\nOutput file %q already exists.\n", existing)
	for _, c := range Choices {
		fmt.Fprintf(p.out, "  %s. %s\n", c.Key, c.Label)
	}

	for {
		fmt.Fprint(p.out, "Choose an option (1-3): ")

		line, err := p.readLine(ctx)
		if err != nil {
			fmt.Fprintln(p.out)
			return Cancel
		}

		if r, ok := match(line); ok {
			return r
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter 1, 2 or 3.")
	}
}

type lineResult struct {
	line string
	err  error
}

// readLine reads one line without blocking past ctx cancellation. A read
// abandoned on cancellation finishes in the background.
func (p *LineProvider) readLine(ctx context.Context) (string, error) {
	ch := make(chan lineResult, 1)
	go func() {
		line, err := p.in.ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

func match(answer string) (Resolution, bool) {
	answer = strings.TrimSpace(answer)
	for _, c := range Choices {
		if answer == c.Key {
			return c.Resolution, true
		}
	}
	return Cancel, false
}
