package webhook

type Status string

const (
	StatusProcessed Status = "processed"
	StatusDuplicate Status = "duplicate"
	StatusSkipped   Status = "skipped"
	StatusIgnored   Status = "ignored"
)

// Result is the acknowledgement of one delivered event.
type Result struct {
	EventID string
	Type    string
	Status  Status
}

func (r Result) Duplicate() bool {
	return r.Status == StatusDuplicate
}
