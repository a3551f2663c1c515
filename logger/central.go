package logger

import "io"

// maximum number of entries in the central logger
const maxCentral = 256

// the central logger is used by the command line tools. emulation sessions
// normally carry their own Logger
var central = NewLogger(maxCentral)

// Central returns the application-wide logger.
func Central() *Logger {
	return central
}

// Log adds an entry to the central logger.
func Log(perm Permission, tag string, detail any) {
	central.Log(perm, tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(perm Permission, tag string, detail string, args ...any) {
	central.Logf(perm, tag, detail, args...)
}

// Clear all entries from the central logger.
func Clear() {
	central.Clear()
}

// Write contents of the central logger to output.
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the last number entries of the central logger to output.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho prints central log entries to output as they are made.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}
