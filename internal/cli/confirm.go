package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/state"
)

// StdinConfirmer returns a Confirmer that prints the prompt to out and
// reads a y/N answer from in. Anything but "y" or "yes" declines.
func StdinConfirmer(in io.Reader, out io.Writer) state.Confirmer {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
