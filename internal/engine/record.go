package engine

import (
	"os"
	"strconv"
)

// FileRecord is the single output unit of a scan.
type FileRecord struct {
	// Path as produced by joining the listed directory and the entry name.
	// It is never cleaned or resolved.
	Path    string
	ModTime int64 // seconds since the Unix epoch, 0 if unavailable
	Size    uint64
}

// recordFromInfo builds a record for path from stat metadata.
func recordFromInfo(path string, info os.FileInfo) FileRecord {
	var mtime int64
	if mt := info.ModTime(); !mt.IsZero() && mt.Unix() > 0 {
		mtime = mt.Unix()
	}
	var size uint64
	if info.Size() > 0 {
		size = uint64(info.Size())
	}
	return FileRecord{Path: path, ModTime: mtime, Size: size}
}

// AppendTSV appends the tab-separated line form of r, including the
// trailing newline, to buf.
func (r FileRecord) AppendTSV(buf []byte) []byte {
	buf = append(buf, r.Path...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.ModTime, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, r.Size, 10)
	return append(buf, '\n')
}

// String returns the TSV line without the trailing newline.
func (r FileRecord) String() string {
	b := r.AppendTSV(nil)
	return string(b[:len(b)-1])
}

// Sink receives records as they are discovered. An error from Emit aborts
// the scan.
type Sink interface {
	Emit(rec FileRecord) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(rec FileRecord) error

func (f SinkFunc) Emit(rec FileRecord) error { return f(rec) }

// SinkError wraps a failure to write to the sink.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return "write record for " + e.Path + ": " + e.Err.Error()
}

func (e *SinkError) Unwrap() error { return e.Err }
