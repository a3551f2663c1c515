// Package statsview is an optional HTTP server offering runtime statistics
// of the hle64 tool. It is only built with the statsview build tag, without
// it Launch does nothing.
//
// After launch the statistics are viewable at:
//
//	localhost:12664/debug/statsview
//
// And the standard Go pprof statistics at:
//
//	localhost:12664/debug/pprof/
package statsview
