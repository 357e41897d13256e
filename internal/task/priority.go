package task

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPriority is returned for any priority outside low, medium, high.
var ErrInvalidPriority = errors.New("invalid priority")

// Priority is the urgency level of a task.
// The zero value is not a valid priority.
type Priority uint8

const (
	Low Priority = iota + 1
	Medium
	High
)

var priorityNames = [...]string{
	Low:    "low",
	Medium: "medium",
	High:   "high",
}

// Priorities returns every valid priority, lowest first.
func Priorities() []Priority {
	return []Priority{Low, Medium, High}
}

// ParsePriority parses a priority name. Matching ignores case and
// surrounding whitespace.
func ParsePriority(s string) (Priority, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Priorities() {
		if priorityNames[p] == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (want low, medium or high)", ErrInvalidPriority, s)
}

// Valid reports whether p is one of Low, Medium or High.
func (p Priority) Valid() bool {
	return p >= Low && p <= High
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", uint8(p))
	}
	return priorityNames[p]
}

// Rank orders priorities for display: high is 0, low is 2.
func (p Priority) Rank() int {
	if !p.Valid() {
		return len(priorityNames)
	}
	return int(High - p)
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPriority, p)
	}
	return []byte(priorityNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, err := ParsePriority(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
