package dlist

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clktmr/n64hle/hle/gbi"
	"github.com/clktmr/n64hle/rcp/rdram"
	n64testing "github.com/clktmr/n64hle/testing"
)

var errDiskFull = errors.New("disk full")

type failingFile struct {
	bytes.Buffer
	closed bool
}

func (f *failingFile) Close() error {
	f.closed = true
	return errDiskFull
}

func TestSaveState(t *testing.T) {
	s := gbi.New(rdram.New(0x10000))

	f := &failingFile{}
	err := saveState(f, s)
	n64testing.ExpectSuccess(t, errors.Is(err, errDiskFull))
	n64testing.ExpectSuccess(t, f.closed)
	n64testing.ExpectSuccess(t, strings.Contains(f.String(), "digraph"))

	name := filepath.Join(t.TempDir(), "state.dot")
	n64testing.ExpectSuccess(t, dumpState(name, s))
	b, err := os.ReadFile(name)
	n64testing.ExpectSuccess(t, err)
	n64testing.ExpectSuccess(t, bytes.Contains(b, []byte("GeometryMode")))

	n64testing.ExpectFailure(t, dumpState(filepath.Join(name, "nested"), s))
}
