package weblog

import "time"

// Event is a single normalized HTTP access-log record. Events are immutable
// once created; the engine and panels consume them read-only.
type Event struct {
	ID           string    `json:"id"`
	IP           string    `json:"ip"`
	Method       string    `json:"method"`
	Path         string    `json:"path"`
	Status       int       `json:"status"`
	UserAgent    string    `json:"userAgent"`
	Time         time.Time `json:"timestamp"`
	ResponseTime float64   `json:"responseTime,omitempty"` // milliseconds
	Bytes        int64     `json:"bytes,omitempty"`
}

// Defaults substituted for missing optional fields. A malformed record is
// never rejected, only degraded to these values.
const (
	DefaultMethod = "GET"
	DefaultPath   = "/"
	DefaultStatus = 200
)

// Rejected reports whether the request was refused (client or server error).
func (e Event) Rejected() bool { return e.Status >= 400 }

// StatusClass returns the leading digit of the status code (2, 3, 4, 5).
func (e Event) StatusClass() int {
	if e.Status < 100 || e.Status > 599 {
		return 2
	}
	return e.Status / 100
}

// Normalize fills in documented defaults for missing fields and returns the
// completed event. The receiver is not modified.
func (e Event) Normalize() Event {
	if e.Method == "" {
		e.Method = DefaultMethod
	}
	if e.Path == "" {
		e.Path = DefaultPath
	}
	if e.Status == 0 {
		e.Status = DefaultStatus
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	return e
}
