package reporter

// CompositeReporter fans out events to multiple reporters.
type CompositeReporter struct {
	reporters []Reporter
}

// NewCompositeReporter creates a composite reporter.
func NewCompositeReporter(reporters ...Reporter) *CompositeReporter {
	return &CompositeReporter{reporters: reporters}
}

func (c *CompositeReporter) RunStarted(info RunStartInfo) {
	for _, r := range c.reporters {
		r.RunStarted(info)
	}
}

func (c *CompositeReporter) FileStarted(ctx FileContext) {
	for _, r := range c.reporters {
		r.FileStarted(ctx)
	}
}

func (c *CompositeReporter) Analysis(summary AnalysisSummary) {
	for _, r := range c.reporters {
		r.Analysis(summary)
	}
}

func (c *CompositeReporter) NoChanges(filename string) {
	for _, r := range c.reporters {
		r.NoChanges(filename)
	}
}

func (c *CompositeReporter) PlanReview(review PlanReview) {
	for _, r := range c.reporters {
		r.PlanReview(review)
	}
}

func (c *CompositeReporter) TranscodeStarted(start TranscodeStart) {
	for _, r := range c.reporters {
		r.TranscodeStarted(start)
	}
}

func (c *CompositeReporter) TranscodeProgress(progress ProgressSnapshot) {
	for _, r := range c.reporters {
		r.TranscodeProgress(progress)
	}
}

func (c *CompositeReporter) TranscodeFailed(message string) {
	for _, r := range c.reporters {
		r.TranscodeFailed(message)
	}
}

func (c *CompositeReporter) MediaComparison(comparison MediaComparison) {
	for _, r := range c.reporters {
		r.MediaComparison(comparison)
	}
}

func (c *CompositeReporter) ValidationComplete(summary ValidationSummary) {
	for _, r := range c.reporters {
		r.ValidationComplete(summary)
	}
}

func (c *CompositeReporter) FileComplete(outcome FileOutcome) {
	for _, r := range c.reporters {
		r.FileComplete(outcome)
	}
}

func (c *CompositeReporter) RunComplete(summary RunSummary) {
	for _, r := range c.reporters {
		r.RunComplete(summary)
	}
}

func (c *CompositeReporter) Warning(message string) {
	for _, r := range c.reporters {
		r.Warning(message)
	}
}

func (c *CompositeReporter) Error(err ReporterError) {
	for _, r := range c.reporters {
		r.Error(err)
	}
}

func (c *CompositeReporter) Verbose(message string) {
	for _, r := range c.reporters {
		r.Verbose(message)
	}
}
