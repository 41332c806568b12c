// Package source resolves the input argument and loads log lines into
// memory for the analysis pass.
package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/softmetapod/netlog/internal/model"
)

// Expand resolves a path argument. A literal path passes through untouched;
// an argument containing glob metacharacters expands via doublestar, with
// matches sorted so multi-file report order is stable. Supports recursive
// patterns like /var/log/**/*.log.
func Expand(arg string) ([]string, error) {
	if !strings.ContainsAny(arg, "*?[{") {
		return []string{arg}, nil
	}
	matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files matched %q", arg)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads the whole file into memory and splits it into numbered lines.
// Invalid UTF-8 byte sequences are replaced rather than rejected; exported
// logs routinely carry stray bytes and must never abort the run.
func Load(path string) ([]model.LogLine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text := strings.ToValidUTF8(string(data), "�")
	raw := strings.Split(text, "\n")
	// A trailing newline terminates the last line rather than opening an
	// empty one.
	if n := len(raw); n > 0 && raw[n-1] == "" {
		raw = raw[:n-1]
	}

	lines := make([]model.LogLine, len(raw))
	for i, s := range raw {
		lines[i] = model.LogLine{Num: i + 1, Text: strings.TrimSuffix(s, "\r")}
	}
	return lines, nil
}
