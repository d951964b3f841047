package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader reads answers to prompts without blocking past ctx.
type LineReader struct {
	reader *bufio.Reader
	out    io.Writer
	mu     sync.Mutex
}

// NewLineReader creates a reader that prints prompts to out.
func NewLineReader(in io.Reader, out io.Writer) *LineReader {
	return &LineReader{reader: bufio.NewReader(in), out: out}
}

// ReadLine reads one trimmed line. A final line without a newline is
// returned as is.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		value, err := r.reader.ReadString('\n')
		if errors.Is(err, io.EOF) && value != "" {
			err = nil
		}
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return strings.TrimSpace(res.value), res.err
	}
}

// Ask prints label and reads the answer. An empty answer yields def.
func (r *LineReader) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt += SubtleStyle.Render(" [" + def + "]")
	}
	fmt.Fprint(r.out, FormatPrompt(prompt))

	answer, err := r.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}
