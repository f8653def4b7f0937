package filter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads exclusion patterns from a file and adds them to the set.
// Format:
//   - pattern  → exclude
//   # comment  → skip
//   blank line → skip
//   pattern    → exclude
func (s *Set) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open pattern file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			line = rest
		}
		s.Add(line)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read pattern file %s: %w", path, err)
	}
	return nil
}
