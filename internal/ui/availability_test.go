package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupam905/libdesk/internal/api"
)

func catalogFixture() []api.CatalogItem {
	return []api.CatalogItem{
		{SerialNo: "B001", Name: "The Go Programming Language", Author: "Donovan", Status: api.StatusAvailable},
		{SerialNo: "B002", Name: "The Rust Book", Author: "Klabnik", Status: api.StatusIssued},
		{SerialNo: "B003", Name: "Designing Data-Intensive Applications", Author: "Kleppmann", Status: api.StatusAvailable},
	}
}

func TestOpeningTransactionsLoadsAvailableBooksOnly(t *testing.T) {
	svc := &stubService{books: catalogFixture()}
	m := newTestModel(t, svc)

	m = pump(m, runeMsg("t"))

	assert.Equal(t, SectionTransaction, m.section)
	assert.Equal(t, PageAvailability, m.page)
	assert.False(t, m.busy)

	require.Len(t, m.avail.visible, 2)
	for _, item := range m.avail.visible {
		assert.True(t, item.Available())
	}
	assert.Len(t, m.session.WorkingSet(), 2)
}

func TestSearchResultsKeepUnavailableRowsButBlockSelection(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)
	m.section = SectionTransaction

	m, _ = apply(m, workingSetMsg{items: catalogFixture(), fromSearch: true})
	require.Len(t, m.avail.visible, 3)

	m.avail.form.SetFocus(availListSlot)
	m.avail.cursor = 1 // the issued copy

	m, _ = apply(m, keyMsg(tea.KeySpace))
	assert.Empty(t, m.avail.selected)
	assert.Equal(t, "Only available books can be selected.", m.avail.errMsg)

	m.avail.cursor = 0
	m, _ = apply(m, keyMsg(tea.KeySpace))
	assert.Equal(t, "B001", m.avail.selected)
}

func TestTakeToIssueWithoutSelectionStaysPut(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)
	m.section = SectionTransaction

	m, _ = apply(m, workingSetMsg{items: catalogFixture()})
	m.avail.form.SetFocus(availListSlot)

	m, _ = apply(m, keyMsg(tea.KeyEnter))

	assert.Equal(t, PageAvailability, m.page)
	assert.Equal(t, "select a book first", m.avail.errMsg)
}

func TestTakeToIssuePrefillsFormWithTodaysDate(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)
	m.section = SectionTransaction

	m, _ = apply(m, workingSetMsg{items: catalogFixture()})
	m.avail.form.SetFocus(availListSlot)
	m, _ = apply(m, keyMsg(tea.KeySpace)) // select B001
	m, _ = apply(m, keyMsg(tea.KeyEnter))

	assert.Equal(t, PageIssue, m.page)
	assert.Equal(t, "The Go Programming Language", m.issue.form.Value(issueFieldBook))
	assert.Equal(t, "Donovan", m.issue.form.Value(issueFieldAuthor))
	assert.Equal(t, "B001", m.issue.form.Value(issueFieldSerial))
	assert.Equal(t, "2024-01-11", m.issue.form.Value(issueFieldIssueDate))
	assert.Empty(t, m.issue.form.Value(issueFieldPlanned), "planned return is the operator's choice")
}

func TestLiveFilterIgnoresStaleGenerations(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)
	m.section = SectionTransaction

	m, _ = apply(m, workingSetMsg{items: catalogFixture()})
	require.Len(t, m.avail.visible, 2)

	m.avail.form.SetValue(0, "rust")
	m.avail.filterGen = 4

	// An earlier keystroke's tick must not filter.
	m, _ = apply(m, filterTickMsg{gen: 3})
	assert.Len(t, m.avail.visible, 2)

	// The current generation does.
	m, _ = apply(m, filterTickMsg{gen: 4})
	assert.Empty(t, m.avail.visible)

	m.avail.form.SetValue(0, "go programming")
	m.avail.filterGen++
	m, _ = apply(m, filterTickMsg{gen: m.avail.filterGen})
	require.Len(t, m.avail.visible, 1)
	assert.Equal(t, "B001", m.avail.visible[0].SerialNo)
}

func TestFilteringOutSelectedRowDropsSelection(t *testing.T) {
	svc := &stubService{}
	m := newTestModel(t, svc)
	m.section = SectionTransaction

	m, _ = apply(m, workingSetMsg{items: catalogFixture()})
	m.avail.form.SetFocus(availListSlot)
	m, _ = apply(m, keyMsg(tea.KeySpace))
	require.Equal(t, "B001", m.avail.selected)

	m.avail.form.SetValue(0, "data-intensive")
	m.avail.filterGen++
	m, _ = apply(m, filterTickMsg{gen: m.avail.filterGen})

	assert.Empty(t, m.avail.selected)
}

func TestServerErrorDetailShownVerbatim(t *testing.T) {
	svc := &stubService{booksErr: &api.Error{StatusCode: 500, Detail: "catalog store offline"}}
	m := newTestModel(t, svc)

	m = pump(m, runeMsg("t"))

	assert.Equal(t, SectionTransaction, m.section)
	assert.Equal(t, "catalog store offline", m.avail.errMsg)
}
