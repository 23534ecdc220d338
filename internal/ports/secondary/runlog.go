package secondary

// RunLog is the plain-text run record written to the destination
// directory. It is the authoritative detail record of a run; the summary
// returned to the caller is derived from it.
type RunLog interface {
	// Printf appends one timestamped line.
	Printf(format string, args ...any)

	// Warnf appends one timestamped warning line.
	Warnf(format string, args ...any)

	// Path returns the log file location, empty for discard logs.
	Path() string

	// Close flushes and closes the log.
	Close() error
}
