// Package state provides the mutable session shared across desk workflows.
//
// A single Session instance is created by the application shell and passed
// into the UI. It holds exactly three things: the authenticated identity,
// the cached availability working set, and a single return-context slot.
//
// The return-context slot is the only state bridging the Return and Fine
// steps. It is never a collection: BeginReturn refuses to overwrite an
// occupied slot, which makes "at most one active return/fine flow" a
// structural property instead of a UI-ordering convention. Reset clears the
// whole session on logout or when the backend reports an expired session.
//
// Access is guarded by a readers-writer mutex because bubbletea commands run
// on their own goroutines. Snapshots are returned by value with the working
// set defensively copied.
package state
