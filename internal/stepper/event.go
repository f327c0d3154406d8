package stepper

import "fmt"

// Kind classifies an event for renderers.
type Kind string

const (
	KindInfo      Kind = "info"
	KindTry       Kind = "try"
	KindCompare   Kind = "compare"
	KindPlace     Kind = "place"
	KindBacktrack Kind = "backtrack"
	KindPrune     Kind = "prune"
	KindSuccess   Kind = "success"
)

// Event describes one observable change of an algorithm run.
// Payload holds algorithm specific data and never aliases engine state.
type Event struct {
	Seq       int    `json:"seq"`
	Algorithm string `json:"algorithm"`
	Kind      Kind   `json:"kind"`
	Action    string `json:"action"`
	Message   string `json:"message"`
	Payload   any    `json:"payload,omitempty"`
}

func (e Event) String() string {
	return fmt.Sprintf("#%d [%s] %s", e.Seq, e.Kind, e.Message)
}

// NewEvent builds an event; Seq and Algorithm are stamped by the Machine.
func NewEvent(kind Kind, action string, payload any, format string, args ...any) *Event {
	return &Event{
		Kind:    kind,
		Action:  action,
		Message: fmt.Sprintf(format, args...),
		Payload: payload,
	}
}
