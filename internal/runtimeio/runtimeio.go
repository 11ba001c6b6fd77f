package runtimeio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var ErrInputUnavailable = errors.New("input is not available in non-interactive mode")

func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Prompt writes prompt to out and reads one line from in.
func Prompt(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	if prompt != "" {
		_, _ = fmt.Fprint(out, prompt)
	}
	line, err := in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrInputUnavailable
		}
		if !errors.Is(err, io.EOF) {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
