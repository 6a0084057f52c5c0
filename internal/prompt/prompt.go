// Package prompt asks the user how to settle uncertain capture times and
// duplicates found while planning.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"photorg/internal/photorg"
)

// Answer is a pre-selected reply applied to every prompt.
type Answer string

const (
	AnswerNone   Answer = ""
	AnswerKeep   Answer = "keep"
	AnswerDelete Answer = "delete"
	AnswerAbort  Answer = "abort"
)

// ErrNotInteractive is returned when a prompt is needed but input is not a
// terminal and no answer was assumed.
var ErrNotInteractive = errors.New("input is not a terminal; use --assume to answer prompts")

// ParseAnswer accepts "keep", "delete" and "abort", their first letters, or
// the empty string for no assumed answer.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return AnswerNone, nil
	case "k", "keep":
		return AnswerKeep, nil
	case "d", "delete":
		return AnswerDelete, nil
	case "a", "abort":
		return AnswerAbort, nil
	}
	return AnswerNone, fmt.Errorf("invalid answer %q: want keep, delete or abort", s)
}

// Options configures a Prompter.
type Options struct {
	// Assume answers prompts without asking. AnswerDelete only applies to
	// duplicates; uncertain times are still asked about.
	Assume Answer

	// Interactive reports whether the input can be prompted.
	Interactive bool
}

// Prompter is the interactive photorg.DecisionProvider.
type Prompter struct {
	in   *bufio.Reader
	out  io.Writer
	opts Options

	title *color.Color
	label *color.Color
	warn  *color.Color
}

// New creates a Prompter reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, opts Options) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		opts:  opts,
		title: color.New(color.Bold),
		label: color.New(color.FgCyan),
		warn:  color.New(color.FgYellow),
	}
}

// NewTerminal creates a Prompter on the process's standard streams.
func NewTerminal(assume Answer) *Prompter {
	return New(os.Stdin, os.Stdout, Options{
		Assume:      assume,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
	})
}

func (p *Prompter) ResolveUncertainTime(photo *photorg.Photo) (photorg.TimeDecision, error) {
	switch p.opts.Assume {
	case AnswerKeep:
		return photorg.TimeDecision{Action: photorg.KeepTime}, nil
	case AnswerAbort:
		return photorg.TimeDecision{Action: photorg.AbortTime}, nil
	}
	if !p.opts.Interactive {
		return photorg.TimeDecision{}, fmt.Errorf("capture time of %s is uncertain: %w", photo.Path, ErrNotInteractive)
	}

	for {
		p.title.Fprintln(p.out, "We cannot accurately determine the date and time this photo has been taken:")
		fmt.Fprintln(p.out)
		p.field("File name      ", photo.Path.Name())
		p.field("Path           ", dirOf(photo))
		p.field("Datetime found ", photo.Timestamp())
		p.field("Datetime source", string(photo.Source))
		p.tags(photo.Tags)

		answer, err := p.ask("\nHow to proceed? [(k)eep as is/(i)nput new datetime/(a)bort] ")
		if err != nil {
			return photorg.TimeDecision{}, err
		}

		switch strings.ToLower(answer) {
		case "k":
			return photorg.TimeDecision{Action: photorg.KeepTime}, nil
		case "a":
			return photorg.TimeDecision{Action: photorg.AbortTime}, nil
		case "i":
			input, err := p.ask("Which datetime? [YYYY-MM-DD hh:mm:ss] ")
			if err != nil {
				return photorg.TimeDecision{}, err
			}
			t, err := time.ParseInLocation(photorg.TimestampLayout, input, time.Local)
			if err != nil {
				p.warn.Fprintln(p.out, "Not a valid datetime, try again")
				fmt.Fprintln(p.out)
				continue
			}
			return photorg.TimeDecision{Action: photorg.OverrideTime, Time: t}, nil
		default:
			p.warn.Fprintln(p.out, "Unrecognized command, try again")
			fmt.Fprintln(p.out)
		}
	}
}

func (p *Prompter) ResolveDuplicate(original, duplicate *photorg.Photo) (photorg.DuplicateAction, error) {
	switch p.opts.Assume {
	case AnswerKeep:
		return photorg.KeepDuplicate, nil
	case AnswerDelete:
		return photorg.DeleteDuplicate, nil
	case AnswerAbort:
		return photorg.AbortDuplicate, nil
	}
	if !p.opts.Interactive {
		return 0, fmt.Errorf("%s duplicates %s: %w", duplicate.Path, original.Path, ErrNotInteractive)
	}

	for {
		p.title.Fprintln(p.out, "The following file:")
		fmt.Fprintln(p.out)
		p.describe(duplicate)
		fmt.Fprintln(p.out)
		p.title.Fprintln(p.out, "Has been found to be a duplicate of another:")
		fmt.Fprintln(p.out)
		p.describe(original)

		answer, err := p.ask("\nHow to proceed? [(k)eep duplicate/(d)elete duplicate/(a)bort] ")
		if err != nil {
			return 0, err
		}

		switch strings.ToLower(answer) {
		case "k":
			return photorg.KeepDuplicate, nil
		case "d":
			return photorg.DeleteDuplicate, nil
		case "a":
			return photorg.AbortDuplicate, nil
		default:
			p.warn.Fprintln(p.out, "Unrecognized command, try again")
			fmt.Fprintln(p.out)
		}
	}
}

// ask prints question and returns the reply without surrounding whitespace.
func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) field(name, value string) {
	p.label.Fprintf(p.out, "%s", name)
	fmt.Fprintf(p.out, ": %s\n", value)
}

func (p *Prompter) describe(photo *photorg.Photo) {
	p.field("File name", photo.Path.Name())
	p.field("Path     ", dirOf(photo))
	p.field("Size     ", fmt.Sprintf("%d", photo.Size))

	digests := photo.Digests()
	algorithms := make([]string, 0, len(digests))
	for algorithm := range digests {
		algorithms = append(algorithms, algorithm)
	}
	slices.Sort(algorithms)
	for _, algorithm := range algorithms {
		p.field(fmt.Sprintf("%-9s", strings.ToUpper(algorithm)), digests[algorithm])
	}
}

func (p *Prompter) tags(tags map[string]string) {
	if len(tags) == 0 {
		p.label.Fprint(p.out, "EXIF")
		fmt.Fprintln(p.out, ": (empty)")
		return
	}
	p.label.Fprint(p.out, "EXIF")
	fmt.Fprintln(p.out, ":")

	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		p.field(fmt.Sprintf("%-14s", name), tags[name])
	}
}

func dirOf(photo *photorg.Photo) string {
	return filepath.Dir(photo.Path.String())
}

var _ photorg.DecisionProvider = (*Prompter)(nil)
