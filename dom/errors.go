package dom

import "errors"

// Structural mutation failures. Parse-time anomalies are never errors: the
// parser always produces a best-effort tree. Only misuse of the structural
// API (inserting relative to a detached node, replacing a node its claimed
// parent does not hold) is surfaced, and it is surfaced before the tree is
// touched so a failed operation never corrupts it.
var (
	// ErrNoParent reports an insert or replace relative to a node that has
	// no parent (detached, or never attached).
	ErrNoParent = errors.New("reference node has no parent")

	// ErrNotFound reports a reference node that its parent's child list no
	// longer contains (a stale handle).
	ErrNotFound = errors.New("reference node not found in parent")
)
