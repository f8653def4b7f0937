package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileRecordAppendTSV(t *testing.T) {
	rec := FileRecord{Path: "dir/a b.txt", ModTime: 1700000000, Size: 10}
	assert.Equal(t, "dir/a b.txt\t1700000000\t10\n", string(rec.AppendTSV(nil)))

	buf := []byte("prefix\n")
	buf = rec.AppendTSV(buf)
	assert.Equal(t, "prefix\ndir/a b.txt\t1700000000\t10\n", string(buf))
}

func TestFileRecordString(t *testing.T) {
	rec := FileRecord{Path: "x", ModTime: 0, Size: 0}
	assert.Equal(t, "x\t0\t0", rec.String())
}

func TestSinkErrorUnwrap(t *testing.T) {
	inner := assert.AnError
	err := &SinkError{Path: "p", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "write record for p: "+inner.Error(), err.Error())
}
