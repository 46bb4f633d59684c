package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupam905/libdesk/internal/api"
)

func TestSession_ReturnSlotIsExclusive(t *testing.T) {
	s := &Session{}

	_, ok := s.ActiveReturn()
	require.False(t, ok, "fresh session has no active return")

	require.True(t, s.BeginReturn(ReturnContext{IssueID: 7, MembershipID: "M001"}))
	assert.False(t, s.BeginReturn(ReturnContext{IssueID: 8}), "second flow refused while first active")

	rc, ok := s.ActiveReturn()
	require.True(t, ok)
	assert.Equal(t, int64(7), rc.IssueID, "first context untouched by refused begin")

	s.ClearReturn()
	_, ok = s.ActiveReturn()
	assert.False(t, ok)
	assert.True(t, s.BeginReturn(ReturnContext{IssueID: 8}), "slot reusable after clear")
}

func TestSession_UpdateReturnFine(t *testing.T) {
	s := &Session{}
	s.UpdateReturnFine(50) // no-op without an active context

	require.True(t, s.BeginReturn(ReturnContext{IssueID: 7, FineAmount: 100}))
	s.UpdateReturnFine(30)

	rc, ok := s.ActiveReturn()
	require.True(t, ok)
	assert.Equal(t, 30, rc.FineAmount)
}

func TestSession_WorkingSetIsCopied(t *testing.T) {
	s := &Session{}
	items := []api.CatalogItem{{SerialNo: "B-001", Name: "Dune"}}
	s.SetWorkingSet(items)

	items[0].Name = "mutated"
	got := s.WorkingSet()
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Name, "store unaffected by caller mutation")

	got[0].Name = "mutated again"
	assert.Equal(t, "Dune", s.WorkingSet()[0].Name, "snapshot mutation does not leak back")
}

func TestSession_ResetClearsEverything(t *testing.T) {
	s := &Session{}
	s.SetUser(api.LoginResult{Username: "desk", Role: "admin"})
	s.SetWorkingSet([]api.CatalogItem{{SerialNo: "B-001"}})
	require.True(t, s.BeginReturn(ReturnContext{IssueID: 7}))
	require.True(t, s.IsAdmin())

	s.Reset()

	_, loggedIn := s.User()
	assert.False(t, loggedIn)
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.WorkingSet())
	_, ok := s.ActiveReturn()
	assert.False(t, ok)
}
