// Package prompt provides the terminal prompter used by the menu.
package prompt

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the operator interrupts a prompt (Ctrl-C or EOF).
var ErrAborted = errors.New("prompt aborted")

// Terminal prompts on a terminal. Validation failures are shown inline and
// the same question is asked again until it passes.
type Terminal struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
	// Size is the number of menu lines shown at once.
	Size int
}

// NewTerminal returns a prompter on the process's standard streams.
func NewTerminal() *Terminal {
	return &Terminal{Size: 15}
}

// Select asks the operator to pick one of items and returns its index.
func (t *Terminal) Select(label string, items []string) (int, error) {
	sel := promptui.Select{
		Label:  label,
		Items:  items,
		Size:   t.Size,
		Stdin:  t.Stdin,
		Stdout: t.Stdout,
	}
	idx, _, err := sel.Run()
	if err != nil {
		return 0, translate(err)
	}
	return idx, nil
}

// Input asks for free text until validate accepts it.
func (t *Terminal) Input(label string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    t.Stdin,
		Stdout:   t.Stdout,
	}
	value, err := p.Run()
	if err != nil {
		return "", translate(err)
	}
	return value, nil
}

func translate(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}
