package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadPath prints prompt and reads one line naming a file. The line is
// trimmed of surrounding whitespace.
func ReadPath(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	io.WriteString(out, prompt)

	line, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading file name: %w", err)
	}
	return strings.TrimSpace(line), nil
}
