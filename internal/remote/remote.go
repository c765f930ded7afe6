// Package remote defines the contract for a mounted storage substrate.
//
// A substrate is an opaque storage service reachable through exactly three
// operations: read a document, list a subtree, and grep a subtree with a
// bare regex pattern. How the substrate routes those calls internally
// (SQLite, a network service, heterogeneous engines behind a broker) is
// deliberately not modelled here. Consumers depend only on this interface,
// enabling testing with fakes and alternative backends.
package remote

import "context"

// Match is one whole-line hit returned by Backend.Grep. The substrate
// reports no sub-line detail: no match offsets, no capture groups. Paths
// are in the substrate's native form; callers translate them back to
// mount-relative paths.
type Match struct {
	Path string // Native document path
	Line int    // 1-indexed line number
	Text string // Full matching line
}

// Entry is one child of a listed subtree.
type Entry struct {
	Name string // Base name of the child
	Dir  bool   // True when the child has descendants of its own
}

// Backend is the three-operation substrate contract.
//
// Grep accepts only a bare pattern string. There is no flag surface: no
// case folding, no inversion, no occurrence extraction. Callers that need
// any of those must evaluate locally via Read and List instead.
type Backend interface {
	// Read returns the full content of the document at path.
	Read(ctx context.Context, path string) (string, error)

	// List returns the immediate children of path. A document and a
	// subtree may share a path; both appear as entries.
	List(ctx context.Context, path string) ([]Entry, error)

	// Grep searches every document under path (inclusive) for the
	// pattern and returns whole-line matches in a stable order.
	Grep(ctx context.Context, pattern, path string) ([]Match, error)

	// Close releases backend resources.
	Close() error
}
