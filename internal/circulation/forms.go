package circulation

import (
	"errors"
	"strings"

	"github.com/rupam905/libdesk/internal/api"
)

// Validation failures shown inline next to the relevant form. None of these
// reach the network: a form that fails validation sends no request.
var (
	ErrNoSelection      = errors.New("select a book first")
	ErrIssueIncomplete  = errors.New("all fields except remarks are mandatory")
	ErrReturnIncomplete = errors.New("membership id and serial no are mandatory")
	ErrNoReturnActive   = errors.New("no return in progress")
	ErrReturnDateNeeded = errors.New("actual return date is mandatory")
	ErrFinePending      = errors.New("fine pending, please mark fine paid")
)

// IssueForm collects the fields of the issue step.
type IssueForm struct {
	MembershipID  string
	BookName      string
	Author        string
	SerialNo      string
	IssueDate     string
	PlannedReturn string
	Remarks       string
}

// Validate checks that every field but remarks is present.
func (f IssueForm) Validate() error {
	required := []string{
		f.MembershipID,
		f.BookName,
		f.Author,
		f.SerialNo,
		f.IssueDate,
		f.PlannedReturn,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return ErrIssueIncomplete
		}
	}
	return nil
}

// Request converts the form into the wire request. Validate must have passed.
func (f IssueForm) Request() api.IssueRequest {
	return api.IssueRequest{
		SerialNo:      strings.TrimSpace(f.SerialNo),
		MembershipID:  strings.TrimSpace(f.MembershipID),
		IssueDate:     strings.TrimSpace(f.IssueDate),
		PlannedReturn: strings.TrimSpace(f.PlannedReturn),
		Remarks:       strings.TrimSpace(f.Remarks),
	}
}

// FineForm collects the fields of the fine settlement step.
type FineForm struct {
	IssueID          int64
	ActualReturnDate string
	FineAmount       int
	FinePaid         bool
	Remarks          string
}

// Validate enforces the commit preconditions: a resolved return, an actual
// return date, and an acknowledged payment whenever a fine is due.
func (f FineForm) Validate() error {
	if f.IssueID == 0 {
		return ErrNoReturnActive
	}
	if strings.TrimSpace(f.ActualReturnDate) == "" {
		return ErrReturnDateNeeded
	}
	if f.FineAmount > 0 && !f.FinePaid {
		return ErrFinePending
	}
	return nil
}

// Request converts the form into the wire request. Validate must have passed.
func (f FineForm) Request() api.CompleteReturnRequest {
	return api.CompleteReturnRequest{
		IssueID:          f.IssueID,
		ActualReturnDate: strings.TrimSpace(f.ActualReturnDate),
		FinePaid:         f.FinePaid,
		Remarks:          strings.TrimSpace(f.Remarks),
	}
}

// ValidateReturnLookup checks the explicit find action's inputs.
func ValidateReturnLookup(membershipID, serialNo string) error {
	if strings.TrimSpace(membershipID) == "" || strings.TrimSpace(serialNo) == "" {
		return ErrReturnIncomplete
	}
	return nil
}
