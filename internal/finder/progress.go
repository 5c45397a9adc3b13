package finder

// ProgressReporter receives probe progress. Implementations can display
// progress bars, log messages, or remain silent.
type ProgressReporter interface {
	// OnProbeStart is called with the number of archives to probe.
	OnProbeStart(total int)

	// OnProbed is called after each archive is probed.
	OnProbed(archivePath string, matched bool)

	// OnProbeComplete is called with the final match count.
	OnProbeComplete(matches int)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnProbeStart(total int)                    {}
func (NoOpProgressReporter) OnProbed(archivePath string, matched bool) {}
func (NoOpProgressReporter) OnProbeComplete(matches int)               {}
