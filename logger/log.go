// Package logger is a tagged, bounded log used for emulation diagnostics.
//
// Consecutive identical entries are folded into one entry with a repeat
// count, so a misbehaving display list that hits the same unknown opcode
// every frame does not flood the log.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Entry represents a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	repeated  int
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(e.Tag)
	s.WriteString(": ")
	s.WriteString(e.Detail)
	if e.repeated > 0 {
		fmt.Fprintf(&s, " (repeat x%d)", e.repeated+1)
	}
	s.WriteString("\n")
	return s.String()
}

// Logger holds at most a fixed number of entries, discarding the oldest.
type Logger struct {
	maxEntries int
	entries    []Entry
	echo       io.Writer
}

// NewLogger returns a logger that keeps the most recent maxEntries entries.
func NewLogger(maxEntries int) *Logger {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Logger{
		maxEntries: maxEntries,
		entries:    make([]Entry, 0, maxEntries),
	}
}

// Log adds an entry. The detail is formatted according to its type: errors
// use Error(), fmt.Stringer uses String() and anything else the %v verb.
func (l *Logger) Log(perm Permission, tag string, detail any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	var s string
	switch d := detail.(type) {
	case string:
		s = d
	case error:
		s = d.Error()
	case fmt.Stringer:
		s = d.String()
	default:
		s = fmt.Sprintf("%v", d)
	}
	l.log(tag, s)
}

// Logf adds a formatted entry.
func (l *Logger) Logf(perm Permission, tag string, detail string, args ...any) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}
	l.log(tag, fmt.Sprintf(detail, args...))
}

func (l *Logger) log(tag, detail string) {
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	now := time.Now()
	var e *Entry
	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		e = &l.entries[n-1]
		e.repeated++
		e.Timestamp = now
	} else {
		if len(l.entries) == l.maxEntries {
			copy(l.entries, l.entries[1:])
			l.entries = l.entries[:len(l.entries)-1]
		}
		l.entries = append(l.entries, Entry{Timestamp: now, Tag: tag, Detail: detail})
		e = &l.entries[len(l.entries)-1]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

// Len returns the number of entries currently held.
func (l *Logger) Len() int {
	return len(l.entries)
}

// Clear removes all entries.
func (l *Logger) Clear() {
	l.entries = l.entries[:0]
}

// Write all entries to output.
func (l *Logger) Write(output io.Writer) {
	for i := range l.entries {
		io.WriteString(output, l.entries[i].String())
	}
}

// Tail writes the last number entries to output.
func (l *Logger) Tail(output io.Writer, number int) {
	number = min(max(number, 0), len(l.entries))
	for i := len(l.entries) - number; i < len(l.entries); i++ {
		io.WriteString(output, l.entries[i].String())
	}
}

// SetEcho prints every new or repeated entry to output. A nil writer turns
// echoing off.
func (l *Logger) SetEcho(output io.Writer) {
	l.echo = output
}
