package circulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIssueForm() IssueForm {
	return IssueForm{
		MembershipID:  "M001",
		BookName:      "Dune",
		Author:        "Frank Herbert",
		SerialNo:      "B-001",
		IssueDate:     "2024-01-05",
		PlannedReturn: "2024-01-15",
	}
}

func TestIssueForm_Validate(t *testing.T) {
	require.NoError(t, validIssueForm().Validate())

	t.Run("remarks optional", func(t *testing.T) {
		f := validIssueForm()
		f.Remarks = ""
		assert.NoError(t, f.Validate())
	})

	mutations := map[string]func(*IssueForm){
		"membership":     func(f *IssueForm) { f.MembershipID = "" },
		"book name":      func(f *IssueForm) { f.BookName = "  " },
		"author":         func(f *IssueForm) { f.Author = "" },
		"serial":         func(f *IssueForm) { f.SerialNo = "" },
		"issue date":     func(f *IssueForm) { f.IssueDate = "" },
		"planned return": func(f *IssueForm) { f.PlannedReturn = "" },
	}
	for name, mutate := range mutations {
		t.Run("missing "+name, func(t *testing.T) {
			f := validIssueForm()
			mutate(&f)
			assert.ErrorIs(t, f.Validate(), ErrIssueIncomplete)
		})
	}
}

func TestIssueForm_RequestTrimsFields(t *testing.T) {
	f := validIssueForm()
	f.SerialNo = " B-001 "
	f.Remarks = " fragile "

	req := f.Request()
	assert.Equal(t, "B-001", req.SerialNo)
	assert.Equal(t, "fragile", req.Remarks)
}

func TestFineForm_Validate(t *testing.T) {
	base := FineForm{
		IssueID:          7,
		ActualReturnDate: "2024-01-11",
		FineAmount:       100,
		FinePaid:         true,
	}
	require.NoError(t, base.Validate())

	t.Run("no return in progress", func(t *testing.T) {
		f := base
		f.IssueID = 0
		assert.ErrorIs(t, f.Validate(), ErrNoReturnActive)
	})

	t.Run("missing actual return date", func(t *testing.T) {
		f := base
		f.ActualReturnDate = " "
		assert.ErrorIs(t, f.Validate(), ErrReturnDateNeeded)
	})

	t.Run("unpaid fine blocks submission", func(t *testing.T) {
		f := base
		f.FinePaid = false
		assert.ErrorIs(t, f.Validate(), ErrFinePending)
	})

	t.Run("zero fine needs no acknowledgement", func(t *testing.T) {
		f := base
		f.FineAmount = 0
		f.FinePaid = false
		assert.NoError(t, f.Validate())
	})
}

func TestValidateReturnLookup(t *testing.T) {
	assert.NoError(t, ValidateReturnLookup("M001", "B-001"))
	assert.ErrorIs(t, ValidateReturnLookup("", "B-001"), ErrReturnIncomplete)
	assert.ErrorIs(t, ValidateReturnLookup("M001", "  "), ErrReturnIncomplete)
}
