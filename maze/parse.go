package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

var (
	// ErrMalformedHeader is returned when the n_rows / n_cols declarations are
	// missing or not non-zero integers.
	ErrMalformedHeader = errors.New("malformed maze header")

	// ErrMalformedCell is returned for a cell line that is not "<id>, <O|X>".
	ErrMalformedCell = errors.New("malformed cell line")
)

const (
	rowsKey = "n_rows"
	colsKey = "n_cols"
)

// Load reads a maze file from disk.
func Load(filename string, opts ...Option) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open maze: %w", err)
	}
	defer f.Close()

	g, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return g, nil
}

// Parse reads the maze text format:
//
//	n_rows = 3
//	n_cols = 3
//	1, X
//	7, X
//
// Cells not listed are open. Blank lines and lines starting with # are skipped.
// Every bad cell line is reported, not only the first.
func Parse(r io.Reader, opts ...Option) (*Graph, error) {
	b, err := ParseBuilder(r, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// ParseBuilder is Parse without the final Build, so callers can add more
// obstacles before linking.
func ParseBuilder(r io.Reader, opts ...Option) (*Builder, error) {
	lines := &lineReader{scanner: bufio.NewScanner(r)}

	rows, err := lines.header(rowsKey)
	if err != nil {
		return nil, err
	}
	cols, err := lines.header(colsKey)
	if err != nil {
		return nil, err
	}

	b, err := NewBuilder(rows, cols, opts...)
	if err != nil {
		return nil, err
	}

	var errs error
	for {
		line, n, ok := lines.next()
		if !ok {
			break
		}
		id, blocked, err := parseCellLine(line)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", n, err))
			continue
		}
		if err := b.setBlocked(id, blocked); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", n, err))
		}
	}
	if err := lines.scanner.Err(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("failed to read maze: %w", err))
	}
	if errs != nil {
		return nil, errs
	}

	return b, nil
}

type lineReader struct {
	scanner *bufio.Scanner
	n       int
}

// next returns the next non-blank, non-comment line, trimmed
func (l *lineReader) next() (string, int, bool) {
	for l.scanner.Scan() {
		l.n++
		line := strings.TrimSpace(l.scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, l.n, true
	}
	return "", l.n, false
}

func (l *lineReader) header(key string) (int, error) {
	line, n, ok := l.next()
	if !ok {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformedHeader, key)
	}

	fields := strings.Split(line, "=")
	if len(fields) != 2 || strings.TrimSpace(fields[0]) != key {
		return 0, fmt.Errorf("%w: line %d: expected %q, got %q", ErrMalformedHeader, n, key+" = <n>", line)
	}

	value := strings.TrimSpace(fields[1])
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: expected integer but got %q", ErrMalformedHeader, n, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%w: line %d: %s must be positive, got %d", ErrMalformedHeader, n, key, v)
	}
	return v, nil
}

func parseCellLine(line string) (int, bool, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedCell, line)
	}

	idField := strings.TrimSpace(fields[0])
	id, err := strconv.Atoi(idField)
	if err != nil {
		return 0, false, fmt.Errorf("%w: expected an integer but found %q", ErrMalformedCell, idField)
	}

	switch flag := strings.TrimSpace(fields[1]); flag {
	case "X":
		return id, true, nil
	case "O":
		return id, false, nil
	default:
		return 0, false, fmt.Errorf("%w: expected O or X but found %q", ErrMalformedCell, flag)
	}
}
