package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/bamsammich/treescan/internal/filter"
	"github.com/bamsammich/treescan/internal/stats"
)

// DefaultMaxDepth bounds recursion when the caller does not choose a depth.
const DefaultMaxDepth = 64

// Config controls scanner behavior. It is not modified during a scan.
type Config struct {
	Root           string
	MaxDepth       int
	FollowSymlinks bool
	Exclude        *filter.Set

	// Fs is the filesystem to walk. Nil means the host filesystem.
	Fs afero.Fs
	// Stats receives scan counters. Nil means a private collector.
	Stats *stats.Collector
}

// Validate checks the parts of the config a caller can get wrong.
func (c Config) Validate() error {
	if c.Root == "" {
		return errors.New("root is required")
	}
	if c.MaxDepth < 0 {
		return errors.New("max depth must be non-negative")
	}
	return nil
}

// Scanner walks a directory tree depth-first and emits one FileRecord per
// regular file. Filesystem errors below the root never fail the scan; the
// affected entry or subtree is left out.
type Scanner struct {
	cfg   Config
	fs    afero.Fs
	stats *stats.Collector
}

// NewScanner creates a scanner with the given config.
func NewScanner(cfg Config) *Scanner {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	collector := cfg.Stats
	if collector == nil {
		collector = stats.NewCollector()
	}
	return &Scanner{cfg: cfg, fs: fs, stats: collector}
}

// Scan walks the tree from the configured root, streaming records to sink.
// The only error it returns is a *SinkError.
func (s *Scanner) Scan(sink Sink) error {
	return s.scanDir(s.cfg.Root, 0, sink)
}

func (s *Scanner) scanDir(dir string, depth int, sink Sink) error {
	if depth > s.cfg.MaxDepth {
		s.stats.AddDirsTooDeep(1)
		return nil
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		s.stats.AddDirsUnreadable(1)
		return nil
	}
	s.stats.AddDirsListed(1)

	for _, entry := range entries {
		if err := s.processEntry(dir, entry, depth, sink); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) processEntry(dir string, entry os.FileInfo, depth int, sink Sink) error {
	name := entry.Name()
	path := joinEntry(dir, name)

	relPath, ok := s.relPath(path)
	if !ok {
		s.stats.AddEntriesSkipped(1)
		return nil
	}

	mode := entry.Mode()
	if mode&os.ModeSymlink != 0 {
		if !s.cfg.FollowSymlinks {
			s.stats.AddSymlinksSkipped(1)
			return nil
		}
		target, err := s.fs.Stat(path)
		if err != nil {
			s.stats.AddEntriesSkipped(1)
			return nil
		}
		mode = target.Mode()
	}

	switch {
	case mode.IsDir():
		if s.cfg.Exclude.Excluded(name, relPath) {
			s.stats.AddDirsPruned(1)
			return nil
		}
		return s.scanDir(path, depth+1, sink)

	case mode.IsRegular():
		info, err := s.fs.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			s.stats.AddEntriesSkipped(1)
			return nil
		}
		rec := recordFromInfo(path, info)
		if err := sink.Emit(rec); err != nil {
			return &SinkError{Path: path, Err: err}
		}
		s.stats.AddFilesEmitted(1)
		s.stats.AddBytesTotal(info.Size())
		return nil

	default:
		s.stats.AddEntriesSkipped(1)
		return nil
	}
}

// relPath returns path relative to the scan root with forward slashes.
func (s *Scanner) relPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, s.cfg.Root)
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, string(filepath.Separator))
	if rest == "" {
		return "", false
	}
	return filepath.ToSlash(rest), true
}

// joinEntry appends name to dir without cleaning, so emitted paths keep the
// form the root was given in.
func joinEntry(dir, name string) string {
	if dir == "" || os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}
