package ui

import (
	"github.com/rupam905/libdesk/internal/api"
)

// Async results come back into the event loop as typed messages. Every
// message that ends a network call clears the busy flag in Update.

type loginResultMsg struct {
	result api.LoginResult
	err    error
}

type loggedOutMsg struct {
	err error
}

// workingSetMsg replaces the availability working set. fromSearch
// distinguishes a server-side search (results kept as-is) from the default
// catalog load (filtered down to available items).
type workingSetMsg struct {
	items      []api.CatalogItem
	fromSearch bool
	err        error
}

// filterTickMsg fires when the live-filter debounce window settles. Stale
// generations are ignored so only the last scheduled filter applies.
type filterTickMsg struct {
	gen int
}

type issueSubmittedMsg struct {
	err error
}

// openIssuesLoadedMsg carries the full open-issue list for a by-member
// lookup; filtering down to the member happens in Update.
type openIssuesLoadedMsg struct {
	membershipID string
	issues       []api.IssueRecord
	err          error
}

// noticeExpiredMsg clears the self-expiring "no active issues" notice.
type noticeExpiredMsg struct {
	gen int
}

// returnResolvedMsg finishes the by-member path: the chosen open record plus
// its catalog item for display fields.
type returnResolvedMsg struct {
	rec  api.IssueRecord
	item api.CatalogItem
	err  error
}

// returnStartedMsg finishes the explicit find path with the backend's
// canonical record.
type returnStartedMsg struct {
	rec *api.IssueRecord
	err error
}

// returnCommittedMsg ends a return, either via the fine page or the
// zero-fine shortcut.
type returnCommittedMsg struct {
	zeroFine bool
	err      error
}

type reportLoadedMsg struct {
	name string
	rows []map[string]any
	err  error
}

type memberSavedMsg struct {
	err error
}

type memberInfoMsg struct {
	member *api.Membership
	err    error
}

type memberUpdatedMsg struct {
	update *api.MembershipUpdate
	err    error
}

type bookSavedMsg struct {
	err error
}

type bookInfoMsg struct {
	item *api.CatalogItem
	err  error
}

type bookUpdatedMsg struct {
	err error
}
