package stats

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Collector tracks scan statistics using lock-free atomic counters.
type Collector struct {
	dirsListed      atomic.Int64
	dirsUnreadable  atomic.Int64
	dirsPruned      atomic.Int64
	dirsTooDeep     atomic.Int64
	symlinksSkipped atomic.Int64
	filesEmitted    atomic.Int64
	entriesSkipped  atomic.Int64
	bytesTotal      atomic.Int64
	startTime       time.Time
}

// NewCollector creates a Collector with startTime set to now.
func NewCollector() *Collector {
	return &Collector{startTime: time.Now()}
}

// Snapshot is a point-in-time read of all counters.
type Snapshot struct {
	DirsListed      int64
	DirsUnreadable  int64
	DirsPruned      int64
	DirsTooDeep     int64
	SymlinksSkipped int64
	FilesEmitted    int64
	EntriesSkipped  int64
	BytesTotal      int64
	Elapsed         time.Duration
}

func (c *Collector) AddDirsListed(n int64)      { c.dirsListed.Add(n) }
func (c *Collector) AddDirsUnreadable(n int64)  { c.dirsUnreadable.Add(n) }
func (c *Collector) AddDirsPruned(n int64)      { c.dirsPruned.Add(n) }
func (c *Collector) AddDirsTooDeep(n int64)     { c.dirsTooDeep.Add(n) }
func (c *Collector) AddSymlinksSkipped(n int64) { c.symlinksSkipped.Add(n) }
func (c *Collector) AddFilesEmitted(n int64)    { c.filesEmitted.Add(n) }
func (c *Collector) AddEntriesSkipped(n int64)  { c.entriesSkipped.Add(n) }
func (c *Collector) AddBytesTotal(n int64)      { c.bytesTotal.Add(n) }

// Snapshot returns a consistent point-in-time read of all counters.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		DirsListed:      c.dirsListed.Load(),
		DirsUnreadable:  c.dirsUnreadable.Load(),
		DirsPruned:      c.dirsPruned.Load(),
		DirsTooDeep:     c.dirsTooDeep.Load(),
		SymlinksSkipped: c.symlinksSkipped.Load(),
		FilesEmitted:    c.filesEmitted.Load(),
		EntriesSkipped:  c.entriesSkipped.Load(),
		BytesTotal:      c.bytesTotal.Load(),
		Elapsed:         c.Elapsed(),
	}
}

// Elapsed returns time since collector creation.
func (c *Collector) Elapsed() time.Duration {
	return time.Since(c.startTime)
}

// FilesPerSec returns the emission rate over the snapshot's elapsed time.
func (s Snapshot) FilesPerSec() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(s.FilesEmitted) / secs
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d bytes=%d dirs=%d unreadable=%d pruned=%d too_deep=%d symlinks=%d skipped=%d",
		s.FilesEmitted, s.BytesTotal, s.DirsListed, s.DirsUnreadable,
		s.DirsPruned, s.DirsTooDeep, s.SymlinksSkipped, s.EntriesSkipped,
	)
}

// LogValue implements slog.LogValuer so a snapshot can be logged as a group.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("files", s.FilesEmitted),
		slog.String("bytes", FormatBytes(s.BytesTotal)),
		slog.Int64("dirs", s.DirsListed),
		slog.Int64("unreadable", s.DirsUnreadable),
		slog.Int64("pruned", s.DirsPruned),
		slog.Int64("too_deep", s.DirsTooDeep),
		slog.Int64("symlinks", s.SymlinksSkipped),
		slog.Int64("skipped", s.EntriesSkipped),
		slog.Duration("elapsed", s.Elapsed),
		slog.String("files_per_sec", fmt.Sprintf("%.1f", s.FilesPerSec())),
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
