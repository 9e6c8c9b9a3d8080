package splitter

// ProgressReporter provides callbacks for reporting emission progress.
// Implementations can display progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnEmitStart is called before the first file is written.
	OnEmitStart(total int)

	// OnFileEmitted is called after each file is written.
	OnFileEmitted(path string)

	// OnEmitComplete is called after the last file is written.
	OnEmitComplete()
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnEmitStart(total int)     {}
func (n *NoOpProgressReporter) OnFileEmitted(path string) {}
func (n *NoOpProgressReporter) OnEmitComplete()           {}
