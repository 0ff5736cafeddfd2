package metrics

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRanking forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordRanking(ev RankingEvent) error {
	var first error
	for _, s := range m.Sinks {
		if err := s.RecordRanking(ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RecordUpstreamFailure forwards the event to the sinks able to record it.
func (m *MultiSink) RecordUpstreamFailure(ev UpstreamFailure) error {
	var first error
	for _, s := range m.Sinks {
		if rec, ok := s.(UpstreamFailureRecorder); ok {
			if err := rec.RecordUpstreamFailure(ev); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// Close releases every sink holding client resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		CloseSink(s)
	}
}

// CloseSink closes s when it holds client resources, like an InfluxDB client.
func CloseSink(s MetricsSink) {
	if c, ok := s.(interface{ Close() }); ok {
		c.Close()
	}
}
