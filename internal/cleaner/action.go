package cleaner

import (
	"errors"
	"fmt"
	"strings"
)

// Action is what happens to each evicted snapshot.
type Action int

const (
	// Explain only reports what would be freed.
	Explain Action = iota
	// Delete removes the snapshot directory.
	Delete
	// Move relocates the snapshot directory under a target folder.
	Move
)

func (a Action) String() string {
	switch a {
	case Delete:
		return "delete"
	case Move:
		return "move"
	default:
		return "explain"
	}
}

// ParseAction reads "explain", "delete" or "move"; empty means Explain.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "explain":
		return Explain, nil
	case "delete":
		return Delete, nil
	case "move":
		return Move, nil
	default:
		return Explain, fmt.Errorf("unknown action %q (expected explain, delete or move)", s)
	}
}

// ErrActionsFailed is returned by Run when at least one eviction failed.
var ErrActionsFailed = errors.New("some snapshots could not be evicted")

// ActionError records a snapshot whose deletion or move failed.
type ActionError struct {
	Action Action
	Path   string
	Err    error
}

func (e *ActionError) Error() string {
	verb := "Deletion"
	if e.Action == Move {
		verb = "Move"
	}
	return fmt.Sprintf("%s of %q failed, ERROR : %v", verb, e.Path, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}
