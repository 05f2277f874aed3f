package locator

import (
	"bufio"
	"fmt"
	"io"
)

const maxLineBytes = 4 * 1024 * 1024

// Scanner reads decoded lines from a locator stream.
type Scanner struct {
	scanner *bufio.Scanner
	decoder *Decoder
	line    *Line
	read    int
	skipped int
}

// NewScanner returns a Scanner reading from r. A nil decoder selects the
// default tables.
func NewScanner(r io.Reader, decoder *Decoder) *Scanner {
	if decoder == nil {
		decoder = defaultDecoder
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Scanner{scanner: scanner, decoder: decoder}
}

// Scan advances to the next recognized line.
func (s *Scanner) Scan() bool {
	for s.scanner.Scan() {
		raw := s.scanner.Bytes()
		s.read++
		if isBlank(raw) {
			continue
		}
		line, ok := s.decoder.Decode(raw)
		if !ok {
			s.skipped++
			continue
		}
		s.line = line
		return true
	}
	return false
}

// Line returns the line produced by the last successful Scan.
func (s *Scanner) Line() *Line {
	return s.line
}

// Skipped returns how many non-blank lines were dropped so far.
func (s *Scanner) Skipped() int {
	return s.skipped
}

// Read returns how many physical lines were consumed so far.
func (s *Scanner) Read() int {
	return s.read
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	if err := s.scanner.Err(); err != nil {
		return fmt.Errorf("reading locator input: %w", err)
	}
	return nil
}

// ReadLines decodes every recognized line of r.
func ReadLines(r io.Reader, decoder *Decoder) ([]*Line, error) {
	scanner := NewScanner(r, decoder)
	var lines []*Line
	for scanner.Scan() {
		lines = append(lines, scanner.Line())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
