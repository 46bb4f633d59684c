package api

import (
	"time"
)

// DateLayout is the wire format for all backend dates.
const DateLayout = "2006-01-02"

// Catalog item statuses as reported by the backend.
const (
	StatusAvailable = "Available"
	StatusIssued    = "Issued"
)

// CatalogItem mirrors a book or movie row from the catalog endpoints.
// Maintenance endpoints own these records; the circulation flows only read them.
type CatalogItem struct {
	SerialNo        string  `json:"serial_no"`
	Name            string  `json:"name"`
	Author          string  `json:"author"`
	Category        string  `json:"category"`
	Status          string  `json:"status"`
	Cost            float64 `json:"cost"`
	ProcurementDate string  `json:"procurement_date"`
	Type            string  `json:"type"`
}

// Available reports whether the item can currently be issued.
func (c CatalogItem) Available() bool {
	return c.Status == StatusAvailable
}

// IssueRecord mirrors a lending record. A record is open while
// ActualReturnDate is empty; the backend guarantees at most one open record
// per serial number.
type IssueRecord struct {
	IssueID          int64  `json:"issue_id"`
	MembershipID     string `json:"membership_id"`
	SerialNo         string `json:"serial_no"`
	BookName         string `json:"book_name"`
	Author           string `json:"author"`
	IssueDate        string `json:"issue_date"`
	PlannedReturn    string `json:"planned_return"`
	ActualReturnDate string `json:"actual_return_date"`
	FineAmount       int    `json:"fine_amount"`
	FinePaid         bool   `json:"fine_paid"`
	Remarks          string `json:"remarks"`
}

// Open reports whether the record still awaits a return.
func (r IssueRecord) Open() bool {
	return r.ActualReturnDate == ""
}

// ParsedPlannedReturn returns the planned return date as time.Time when possible.
func (r IssueRecord) ParsedPlannedReturn() time.Time {
	return parseDate(r.PlannedReturn)
}

// Membership mirrors a membership row from the maintenance endpoints.
type Membership struct {
	MembershipID string `json:"membership_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Aadhar       string `json:"aadhar"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Status       string `json:"status"`
	PendingFine  int    `json:"pending_fine"`
}

// MembershipUpdate is the payload returned after an extend/cancel action.
type MembershipUpdate struct {
	NewEndDate string `json:"new_end_date"`
	Status     string `json:"status"`
}

// LoginResult carries the authenticated identity returned by the backend.
type LoginResult struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the logged-in user may open maintenance pages.
func (l LoginResult) IsAdmin() bool {
	return l.Role == "admin"
}

// IssueRequest carries the fields posted to the issue endpoint.
type IssueRequest struct {
	SerialNo      string
	MembershipID  string
	IssueDate     string
	PlannedReturn string
	Remarks       string
}

// CompleteReturnRequest carries the fields posted to the commit endpoint.
type CompleteReturnRequest struct {
	IssueID          int64
	ActualReturnDate string
	FinePaid         bool
	Remarks          string
}

// MembershipForm carries the fields posted when adding a membership.
type MembershipForm struct {
	MembershipID string
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Aadhar       string
	StartDate    string
	Plan         string // "6m", "1y", "2y"
}

// BookForm carries the fields posted when adding a catalog item.
type BookForm struct {
	SerialNo        string
	Name            string
	Author          string
	Category        string
	ProcurementDate string
	Cost            string
	Type            string // "book" or "movie"
}

// BookUpdateForm carries the fields posted when updating a catalog item.
type BookUpdateForm struct {
	SerialNo        string
	Name            string
	Author          string
	Category        string
	Status          string
	ProcurementDate string
}

type resultsResponse[T any] struct {
	Results []T `json:"results"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
