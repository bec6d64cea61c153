package webhook

import "time"

type State string

const (
	StateAbsent    State = "absent"
	StateReserved  State = "reserved"
	StateProcessed State = "processed"
)

// Record is the ledger entry of one event id. A record exists from the moment
// the event is reserved; Release removes it again.
type Record struct {
	EventID     string
	Processed   bool
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

func NewReservation(eventID string, now time.Time) Record {
	return Record{EventID: eventID, CreatedAt: now}
}

func (r Record) MarkProcessed(now time.Time) Record {
	r.Processed = true
	r.ProcessedAt = &now
	return r
}

func (r *Record) State() State {
	switch {
	case r == nil:
		return StateAbsent
	case r.Processed:
		return StateProcessed
	default:
		return StateReserved
	}
}
