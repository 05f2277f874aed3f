package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/unitedstates/uscode/pkg/locator"
	"github.com/unitedstates/uscode/pkg/model"
	"github.com/unitedstates/uscode/pkg/profile"
)

type readCloser struct {
	io.Reader
	io.Closer
}

// openInput opens path, decompressing it when it ends in ".xz".
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if !strings.HasSuffix(path, ".xz") {
		return f, nil
	}

	r, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read xz stream %s: %w", path, err)
	}
	return readCloser{Reader: r, Closer: f}, nil
}

// session carries the settings shared by every command.
type session struct {
	log      *slog.Logger
	compiled *profile.Compiled
}

func newSession(profilePath string, verbose bool) (*session, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	p := profile.Default()
	if profilePath != "" {
		loaded, err := profile.Load(profilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		p = loaded
	}

	compiled, err := p.Compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile profile %q: %w", p.Name, err)
	}
	log.Debug("profile ready", "name", p.Name, "version", p.Version)
	return &session{log: log, compiled: compiled}, nil
}

// readLines decodes every line of the file at path.
func (s *session) readLines(path string) ([]*locator.Line, int, error) {
	in, err := openInput(path)
	if err != nil {
		return nil, 0, err
	}
	defer in.Close()

	scanner := locator.NewScanner(in, s.compiled.Decoder)
	var lines []*locator.Line
	for scanner.Scan() {
		lines = append(lines, scanner.Line())
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	s.log.Debug("lines decoded", "path", path, "lines", len(lines), "skipped", scanner.Skipped())
	return lines, scanner.Skipped(), nil
}

// load decodes and groups the file at path.
func (s *session) load(path string) (*model.File, error) {
	lines, _, err := s.readLines(path)
	if err != nil {
		return nil, err
	}
	return model.Load(lines, s.compiled.Boundaries), nil
}
