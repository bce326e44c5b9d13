// Package debug provides conditional debug logging for drillist.
//
// Debug logging is enabled by setting the DRILLIST_DEBUG environment
// variable:
//
//	DRILLIST_DEBUG=1 drillist tree.yaml
//
// When enabled, debug messages are written to stderr with timestamps. When
// disabled (default), all debug functions are no-ops with zero overhead.
//
// Usage:
//
//	import "github.com/vanderheijden86/drillist/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("applying %d edits", count)
//	    // ...
//	}
package debug

import (
	"log"
	"os"
	"time"

	"github.com/goccy/go-json"
)

var (
	// enabled is true when DRILLIST_DEBUG env var is set
	enabled bool
	// logger writes to stderr with [DRILLIST] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("DRILLIST_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[DRILLIST] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[DRILLIST] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogJSON logs a value as compact JSON, for dumping structured transition
// batches without hand-rolled formatting. Marshalling cost is only paid when
// debug logging is on.
func LogJSON(name string, v any) {
	if !enabled {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Printf("%s: marshal failed: %v", name, err)
		return
	}
	logger.Printf("%s: %s", name, data)
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	logger.Printf("%s: %T = %+v", name, v, v)
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if !enabled {
		return
	}
	logger.Printf("=== %s ===", name)
}
