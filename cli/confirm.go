package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

type readlineConfirmer struct {
	in  io.Reader
	out io.Writer
}

func (c readlineConfirmer) Confirm(question string) (bool, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: question + " [y/N]: ",
		Stdin:  io.NopCloser(c.in),
		Stdout: c.out,
	})
	if err != nil {
		return false, err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}
