package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/clktmr/n64hle/logger"
	n64testing "github.com/clktmr/n64hle/testing"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	n64testing.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	n64testing.ExpectEquality(t, w.String(), "test: this is a test\n")
	w.Reset()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	n64testing.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	n64testing.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	w.Reset()
	log.Tail(w, 1)
	n64testing.ExpectEquality(t, w.String(), "test2: this is another test\n")

	w.Reset()
	log.Tail(w, 0)
	n64testing.ExpectEquality(t, w.String(), "")
}

func TestRepeat(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	for range 3 {
		log.Log(logger.Allow, "gbi", "unknown opcode 0x42")
	}
	n64testing.ExpectEquality(t, log.Len(), 1)
	log.Write(w)
	n64testing.ExpectEquality(t, w.String(), "gbi: unknown opcode 0x42 (repeat x3)\n")
}

func TestBounded(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Logf(logger.Allow, "tag", "%d", 1)
	log.Logf(logger.Allow, "tag", "%d", 2)
	log.Logf(logger.Allow, "tag", "%d", 3)
	n64testing.ExpectEquality(t, log.Len(), 2)
	log.Write(w)
	n64testing.ExpectEquality(t, w.String(), "tag: 2\ntag: 3\n")
}

type prohibit struct{}

func (prohibit) AllowLogging() bool { return false }

func TestPermission(t *testing.T) {
	log := logger.NewLogger(10)
	log.Log(prohibit{}, "tag", "detail")
	log.Logf(prohibit{}, "tag", "detail %d", 1)
	n64testing.ExpectEquality(t, log.Len(), 0)
}

type stringer struct{}

func (stringer) String() string { return "stringer test" }

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", errors.New("test error"))
	log.Log(logger.Allow, "b", stringer{})
	log.Log(logger.Allow, "c", 100)
	log.Write(w)
	n64testing.ExpectEquality(t, w.String(), "a: test error\nb: stringer test\nc: 100\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}
	log.SetEcho(w)
	log.Log(logger.Allow, "ucode", "detected F3DEX")
	n64testing.ExpectEquality(t, w.String(), "ucode: detected F3DEX\n")

	log.SetEcho(nil)
	log.Log(logger.Allow, "ucode", "again")
	n64testing.ExpectEquality(t, w.String(), "ucode: detected F3DEX\n")
}

func TestColorizer(t *testing.T) {
	w := &strings.Builder{}
	c := logger.NewColorizer(w)
	n, err := c.Write([]byte("gbi: error: bad\n"))
	n64testing.ExpectSuccess(t, err)
	n64testing.ExpectEquality(t, n, 16)
	n64testing.ExpectEquality(t, w.String(), "\033[2mgbi\033[0m: \033[31merror: bad\033[0m\n")
}
