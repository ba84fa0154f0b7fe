package logging

// LogEntry represents a structured log record with fields relevant to
// composing and dispatching engine runs.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Run-specific fields
	RunID  string // Identifier of the run being composed
	Method string // Engine method (optimize, sample, ...)
	RunIdx int    // Index within a multi-run request

	// General structured data
	Fields map[string]interface{}
}
