package logger

import (
	"bytes"
	"io"
)

const (
	penDim    = "\033[2m"
	penRed    = "\033[31m"
	penNormal = "\033[0m"
)

// Colorizer highlights log output for a terminal. Entries with an "error"
// or "warning" detail prefix are drawn in red, the tag is dimmed.
type Colorizer struct {
	out io.Writer
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{out: out}
}

// Write implements the io.Writer interface. Each call is expected to carry
// whole log lines.
func (c Colorizer) Write(p []byte) (n int, err error) {
	var b bytes.Buffer
	for line := range bytes.Lines(p) {
		line = bytes.TrimRight(line, "\n")
		tag, detail, ok := bytes.Cut(line, []byte(": "))
		if !ok {
			b.Write(line)
			b.WriteByte('\n')
			continue
		}
		b.WriteString(penDim)
		b.Write(tag)
		b.WriteString(penNormal)
		b.WriteString(": ")
		if bytes.HasPrefix(detail, []byte("error")) || bytes.HasPrefix(detail, []byte("warning")) {
			b.WriteString(penRed)
			b.Write(detail)
			b.WriteString(penNormal)
		} else {
			b.Write(detail)
		}
		b.WriteByte('\n')
	}
	if _, err := c.out.Write(b.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
