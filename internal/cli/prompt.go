package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	input, err := readLine(in, out, fmt.Sprintf("%s [y/N] ", message))
	if err != nil {
		return false
	}
	input = strings.ToLower(input)
	return input == "y" || input == "yes"
}

// readLine prompts for a single line of visible input. It reads byte by
// byte so consecutive prompts can share one reader.
func readLine(in io.Reader, out io.Writer, message string) (string, error) {
	fmt.Fprint(out, message)

	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if errors.Is(err, io.EOF) && sb.Len() > 0 {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// readPassword reads a password without echo when in is a terminal
func readPassword(in io.Reader, out io.Writer, message string) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return readLine(in, out, message)
	}
	fd := int(f.Fd())

	fmt.Fprint(out, message)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(out) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
