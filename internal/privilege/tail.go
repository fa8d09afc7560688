package privilege

import (
	"strings"
	"sync"
)

// tailBuffer keeps the last max complete lines written to it.
type tailBuffer struct {
	mu      sync.Mutex
	max     int
	lines   []string
	partial strings.Builder
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range string(p) {
		if c == '\n' {
			b.push(b.partial.String())
			b.partial.Reset()
			continue
		}
		b.partial.WriteRune(c)
	}
	return len(p), nil
}

func (b *tailBuffer) push(line string) {
	line = strings.TrimRight(line, "\r ")
	if line == "" {
		return
	}
	b.lines = append(b.lines, line)
	if len(b.lines) > b.max {
		b.lines = b.lines[len(b.lines)-b.max:]
	}
}

// String returns the retained lines, including any unterminated final line.
func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := append([]string(nil), b.lines...)
	if rest := strings.TrimRight(b.partial.String(), "\r "); rest != "" {
		lines = append(lines, rest)
		if len(lines) > b.max {
			lines = lines[len(lines)-b.max:]
		}
	}
	return strings.Join(lines, "\n")
}
