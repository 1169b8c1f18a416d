// Package history records completed renders so later runs can tell whether
// output changed and whether identical input ever produced different output.
package history

import (
	"context"
	"time"
)

// Record is one completed render.
type Record struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	ConfigDigest string    `json:"config_digest"` // site configuration only
	InputDigest  string    `json:"input_digest"`  // configuration, sidebars, docs and year
	OutputDigest string    `json:"output_digest"`
	OutputDir    string    `json:"output_dir"`
	Year         int       `json:"year"`
	Files        int       `json:"files"`
	Errors       int       `json:"errors"`
	Warnings     int       `json:"warnings"`
}

// Store persists render records.
type Store interface {
	// Record stores r, assigning its ID and CreatedAt, and returns the stored copy.
	Record(ctx context.Context, r Record) (Record, error)
	// Last returns the most recent record, or nil when there is none.
	Last(ctx context.Context) (*Record, error)
	// LastForInput returns the most recent record with the given input digest, or nil.
	LastForInput(ctx context.Context, inputDigest string) (*Record, error)
	// List returns up to limit records, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Close() error
}

// Status classifies a render against history.
type Status string

const (
	// StatusFirst means no earlier render exists.
	StatusFirst Status = "first"
	// StatusChanged means the output differs from the previous render.
	StatusChanged Status = "changed"
	// StatusUnchanged means the output equals the previous render.
	StatusUnchanged Status = "unchanged"
	// StatusNondeterministic means identical input produced different output earlier.
	StatusNondeterministic Status = "nondeterministic"
)

// Compare classifies cur given the most recent record (last) and the most
// recent record with the same input digest (sameInput). Either may be nil.
func Compare(cur Record, last, sameInput *Record) Status {
	if sameInput != nil && sameInput.OutputDigest != cur.OutputDigest {
		return StatusNondeterministic
	}
	switch {
	case last == nil:
		return StatusFirst
	case last.OutputDigest == cur.OutputDigest:
		return StatusUnchanged
	default:
		return StatusChanged
	}
}
