package mood

import "context"

// DefaultMaxEntries is the retention cap of the entry collection.
const DefaultMaxEntries = 50

// Store is the contract both the file-backed and the in-memory store satisfy.
// List returns entries newest first; Append prepends and enforces the cap.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Append(ctx context.Context, entry Entry) error
}
