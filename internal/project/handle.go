// Package project manages the lifecycle of the directories a
// scaffolding run creates: begin, commit, or roll back without a
// trace.
package project

// Status tracks where a directory handle is in its lifecycle.
type Status int

const (
	Planned Status = iota
	Created
	Committed
	RolledBack
)

// String returns the lifecycle state name for logs.
func (s Status) String() string {
	switch s {
	case Planned:
		return "planned"
	case Created:
		return "created"
	case Committed:
		return "committed"
	case RolledBack:
		return "rolled back"
	default:
		return "unknown"
	}
}

// Handle tracks one directory created by a run. It is owned by the
// Manager that issued it; callers only pass it back to Commit or
// Rollback.
type Handle struct {
	ID   string // transaction id, shows up in verbose logs
	Path string

	status Status

	// Parent segments this run had to create, shallowest first.
	// Unwound on rollback so no half-built chain survives.
	createdParents []string
}

// Status reports the handle's current lifecycle state.
func (h *Handle) Status() Status {
	return h.status
}
