package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	RunStarted(info RunStartInfo)
	FileStarted(ctx FileContext)
	Analysis(summary AnalysisSummary)
	NoChanges(filename string)
	PlanReview(review PlanReview)
	TranscodeStarted(start TranscodeStart)
	TranscodeProgress(progress ProgressSnapshot)
	TranscodeFailed(message string)
	MediaComparison(comparison MediaComparison)
	ValidationComplete(summary ValidationSummary)
	FileComplete(outcome FileOutcome)
	RunComplete(summary RunSummary)
	Warning(message string)
	Error(err ReporterError)
	Verbose(message string)
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) RunStarted(RunStartInfo)            {}
func (NullReporter) FileStarted(FileContext)            {}
func (NullReporter) Analysis(AnalysisSummary)           {}
func (NullReporter) NoChanges(string)                   {}
func (NullReporter) PlanReview(PlanReview)              {}
func (NullReporter) TranscodeStarted(TranscodeStart)    {}
func (NullReporter) TranscodeProgress(ProgressSnapshot) {}
func (NullReporter) TranscodeFailed(string)             {}
func (NullReporter) MediaComparison(MediaComparison)    {}
func (NullReporter) ValidationComplete(ValidationSummary) {
}
func (NullReporter) FileComplete(FileOutcome) {}
func (NullReporter) RunComplete(RunSummary)   {}
func (NullReporter) Warning(string)           {}
func (NullReporter) Error(ReporterError)      {}
func (NullReporter) Verbose(string)           {}
