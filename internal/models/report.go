package models

// Section is one component's record within a report.
type Section struct {
	Component Component
	Record    Record
}

// Report is the aggregated inventory produced by one invocation.
type Report struct {
	// Timestamp is empty when timestamps are disabled.
	Timestamp string
	Sections  []Section
}

// Components returns the components present in the report, in report order.
func (r *Report) Components() []Component {
	out := make([]Component, len(r.Sections))
	for i, s := range r.Sections {
		out[i] = s.Component
	}
	return out
}

// Section returns the record of the given component.
func (r *Report) Section(c Component) (Record, bool) {
	for _, s := range r.Sections {
		if s.Component == c {
			return s.Record, true
		}
	}
	return nil, false
}

// CollectorResult holds the output of a single collector run.
type CollectorResult struct {
	Name  Component
	Data  any
	Error error
}
