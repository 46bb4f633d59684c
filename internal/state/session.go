package state

import (
	"sync"

	"github.com/rupam905/libdesk/internal/api"
)

// ReturnContext is a snapshot of the one in-flight return carried between
// the Return and Fine steps. It is populated by the return flow, read by the
// fine flow, and cleared on commit, cancellation, or logout.
type ReturnContext struct {
	IssueID       int64
	MembershipID  string
	SerialNo      string
	BookName      string
	Author        string
	PlannedReturn string
	FineAmount    int
}

// Session coordinates the cross-step mutable state of one desk session: the
// authenticated identity, the availability working set, and the single
// return-context slot. The application shell owns one Session and hands it
// to the UI; command goroutines may touch it concurrently with the event
// loop, so access is mutex-guarded.
type Session struct {
	mu         sync.RWMutex
	user       api.LoginResult
	loggedIn   bool
	workingSet []api.CatalogItem
	active     *ReturnContext
}

// SetUser records the authenticated identity after a successful login.
func (s *Session) SetUser(user api.LoginResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loggedIn = true
}

// User returns the authenticated identity and whether a login happened.
func (s *Session) User() (api.LoginResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, s.loggedIn
}

// IsAdmin reports whether the session may open maintenance pages.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn && s.user.IsAdmin()
}

// SetWorkingSet replaces the cached availability working set.
func (s *Session) SetWorkingSet(items []api.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workingSet = cloneItems(items)
}

// WorkingSet returns a copy of the cached working set.
func (s *Session) WorkingSet() []api.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.workingSet)
}

// BeginReturn fills the return-context slot. It reports false without
// touching the slot when a return is already in flight; callers disable the
// return entry point on that signal rather than racing for the slot.
func (s *Session) BeginReturn(rc ReturnContext) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return false
	}
	s.active = &rc
	return true
}

// ActiveReturn returns a copy of the in-flight return context, if any.
func (s *Session) ActiveReturn() (ReturnContext, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == nil {
		return ReturnContext{}, false
	}
	return *s.active, true
}

// UpdateReturnFine stores the live provisional fine on the active context.
func (s *Session) UpdateReturnFine(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		s.active.FineAmount = amount
	}
}

// ClearReturn empties the return-context slot.
func (s *Session) ClearReturn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

// Reset wipes everything. Used on logout and on a 401 from any endpoint.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = api.LoginResult{}
	s.loggedIn = false
	s.workingSet = nil
	s.active = nil
}

func cloneItems(items []api.CatalogItem) []api.CatalogItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.CatalogItem, len(items))
	copy(dup, items)
	return dup
}
