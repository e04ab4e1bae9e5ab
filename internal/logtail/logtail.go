package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// maxLineBytes bounds a single log line; zap stack traces stay well below it.
const maxLineBytes = 1 << 20

// Read returns the last limit non-blank lines of the file at path, oldest
// first. A non-positive limit returns every line. A missing file yields no
// lines and no error, since the log is created on first write.
func Read(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		// Trim in batches so long files do not shift the slice per line.
		if limit > 0 && len(lines) >= 2*limit {
			lines = append(lines[:0], lines[len(lines)-limit:]...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines, nil
}

// ReadEntries reads the tail of the log at path and decodes each line.
func ReadEntries(path string, limit int) ([]Entry, error) {
	lines, err := Read(path, limit)
	if err != nil {
		return nil, err
	}
	return ParseLines(lines), nil
}
