// Package trace reads memory access traces and replays them against a
// cache.
package trace

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/cachesim/mem/cache"
)

// A Source provides the accesses of a trace in order. It returns io.EOF
// after the last access.
type Source interface {
	Next() (cache.Access, error)
}

// A Reader parses a trace with one "<I|D> <hex address>" record per line.
// Blank lines are skipped.
type Reader struct {
	name    string
	scanner *bufio.Scanner
	line    int
}

// NewReader creates a reader. The name is only used in error messages.
func NewReader(name string, r io.Reader) *Reader {
	return &Reader{
		name:    name,
		scanner: bufio.NewScanner(r),
	}
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next access. It returns a *FormatError for a malformed
// record, a *ResourceError if reading fails and io.EOF at the end.
func (r *Reader) Next() (cache.Access, error) {
	for r.scanner.Scan() {
		r.line++

		text := strings.TrimSpace(r.scanner.Text())
		if text == "" {
			continue
		}

		return parseRecord(r.line, text)
	}

	if err := r.scanner.Err(); err != nil {
		return cache.Access{}, &ResourceError{Path: r.name, Err: err}
	}

	return cache.Access{}, io.EOF
}

func parseRecord(line int, text string) (cache.Access, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return cache.Access{}, &FormatError{
			Line:   line,
			Token:  text,
			Reason: "expected an access kind and an address",
		}
	}

	kind, err := parseKind(line, fields[0])
	if err != nil {
		return cache.Access{}, err
	}

	addr, err := parseAddress(line, fields[1])
	if err != nil {
		return cache.Access{}, err
	}

	return cache.Access{Address: addr, Kind: kind}, nil
}

func parseKind(line int, token string) (cache.AccessKind, error) {
	switch token {
	case "I":
		return cache.Instruction, nil
	case "D":
		return cache.Data, nil
	default:
		return 0, &FormatError{
			Line:   line,
			Token:  token,
			Reason: "unknown access type",
		}
	}
}

func parseAddress(line int, token string) (uint32, error) {
	digits := token
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}

	addr, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, &FormatError{
			Line:   line,
			Token:  token,
			Reason: "address is not a 32-bit hexadecimal number",
		}
	}

	return uint32(addr), nil
}

// A FileReader reads a trace from a file.
type FileReader struct {
	*Reader
	file *os.File
}

// OpenFile opens a trace file. It returns a *ResourceError if the file cannot
// be opened.
func OpenFile(path string) (*FileReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	return &FileReader{
		Reader: NewReader(path, file),
		file:   file,
	}, nil
}

// Close closes the file.
func (r *FileReader) Close() error {
	return r.file.Close()
}
