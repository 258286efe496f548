package order

import "time"

// StatusUpdate is an immutable entry of the order history.
type StatusUpdate struct {
	status    Status
	timestamp time.Time
	note      string
}

// NewStatusUpdate builds a history entry. Timestamps are kept in UTC.
func NewStatusUpdate(status Status, timestamp time.Time, note string) (StatusUpdate, error) {
	if err := status.Validate(); err != nil {
		return StatusUpdate{}, err
	}
	return StatusUpdate{status: status, timestamp: timestamp.UTC(), note: note}, nil
}

func (u StatusUpdate) Status() Status       { return u.status }
func (u StatusUpdate) Timestamp() time.Time { return u.timestamp }
func (u StatusUpdate) Note() string         { return u.note }
