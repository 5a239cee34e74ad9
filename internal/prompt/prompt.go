// Package prompt asks the operator yes/no questions on a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Options control how Confirm answers.
type Options struct {
	// Yes answers every question with yes without prompting.
	Yes bool
}

// Confirm writes question to out and reads a y/yes answer from in.
// Anything else, including end of input, is a no.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
