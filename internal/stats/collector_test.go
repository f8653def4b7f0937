package stats

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorConcurrent(t *testing.T) {
	c := NewCollector()
	const goroutines = 100
	const opsPerGoroutine = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			for range opsPerGoroutine {
				c.AddDirsListed(1)
				c.AddDirsUnreadable(1)
				c.AddDirsPruned(1)
				c.AddDirsTooDeep(1)
				c.AddSymlinksSkipped(1)
				c.AddFilesEmitted(1)
				c.AddEntriesSkipped(1)
				c.AddBytesTotal(256)
			}
		}()
	}
	wg.Wait()

	s := c.Snapshot()
	expected := int64(goroutines * opsPerGoroutine)
	assert.Equal(t, expected, s.DirsListed)
	assert.Equal(t, expected, s.DirsUnreadable)
	assert.Equal(t, expected, s.DirsPruned)
	assert.Equal(t, expected, s.DirsTooDeep)
	assert.Equal(t, expected, s.SymlinksSkipped)
	assert.Equal(t, expected, s.FilesEmitted)
	assert.Equal(t, expected, s.EntriesSkipped)
	assert.Equal(t, expected*256, s.BytesTotal)
}

func TestSnapshotString(t *testing.T) {
	s := Snapshot{
		DirsListed:      3,
		DirsUnreadable:  1,
		DirsPruned:      2,
		DirsTooDeep:     4,
		SymlinksSkipped: 5,
		FilesEmitted:    10,
		EntriesSkipped:  6,
		BytesTotal:      4096,
	}
	expected := "files=10 bytes=4096 dirs=3 unreadable=1 pruned=2 too_deep=4 symlinks=5 skipped=6"
	assert.Equal(t, expected, s.String())
}

func TestSnapshotLogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := Snapshot{FilesEmitted: 7, BytesTotal: 2048, DirsPruned: 1, Elapsed: 2 * time.Second}
	logger.Info("scan complete", "stats", s)

	out := buf.String()
	assert.Contains(t, out, "stats.files=7")
	assert.Contains(t, out, `stats.bytes="2.0 KiB"`)
	assert.Contains(t, out, "stats.pruned=1")
	assert.Contains(t, out, "stats.files_per_sec=3.5")
}

func TestFilesPerSec(t *testing.T) {
	s := Snapshot{FilesEmitted: 100, Elapsed: 2 * time.Second}
	assert.InDelta(t, 50.0, s.FilesPerSec(), 0.01)

	assert.Equal(t, 0.0, Snapshot{FilesEmitted: 5}.FilesPerSec())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1048576, "1.0 MiB"},
		{1073741824, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestNewCollector(t *testing.T) {
	c := NewCollector()
	assert.False(t, c.startTime.IsZero())
	assert.InDelta(t, 0, c.Elapsed().Seconds(), 1)
}

func TestSnapshotIncludesElapsed(t *testing.T) {
	c := NewCollector()
	time.Sleep(10 * time.Millisecond)
	s := c.Snapshot()
	assert.Greater(t, s.Elapsed, time.Duration(0))
}
