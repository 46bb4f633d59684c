package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines the backend operations the UI depends on.
// This interface is implemented by *Client and can be stubbed in tests.
type Service interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (LoginResult, error)

	SearchAvailability(ctx context.Context, book, author string) ([]CatalogItem, error)
	ListBooks(ctx context.Context) ([]CatalogItem, error)
	ListActiveIssues(ctx context.Context) ([]IssueRecord, error)
	IssueBook(ctx context.Context, req IssueRequest) error
	StartReturn(ctx context.Context, membershipID, serialNo, returnDate string) (*IssueRecord, error)
	CompleteReturn(ctx context.Context, req CompleteReturnRequest) error

	FetchReport(ctx context.Context, name string) ([]map[string]any, error)

	AddMembership(ctx context.Context, form MembershipForm) error
	GetMembership(ctx context.Context, membershipID string) (*Membership, error)
	UpdateMembership(ctx context.Context, membershipID, action string) (*MembershipUpdate, error)
	AddBook(ctx context.Context, form BookForm) error
	GetBook(ctx context.Context, serialNo string) (*CatalogItem, error)
	UpdateBook(ctx context.Context, form BookUpdateForm) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Error is a backend rejection carrying the HTTP status and the server's
// detail message. Transport and decoding failures are plain wrapped errors,
// never *Error.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

// IsUnauthorized reports whether err is a 401 rejection, which must force a
// transition back to the login view.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsForbidden reports whether err is a 403 rejection.
func IsForbidden(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// Detail extracts the server detail message when err is a backend rejection,
// or falls back to the given generic message.
func Detail(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// Client talks to the library-management HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerURL = "http://127.0.0.1:8000"
	defaultUserAgent = "libdesk/0.1"
	genericDetail    = "request failed"
)

// NewClient builds a Client for the given server URL. The client keeps the
// backend session cookie across calls.
func NewClient(serverURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Login authenticates against the backend and returns the session identity.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	var payload LoginResult
	if err := c.postForm(ctx, "/api/auth/login", form, &payload); err != nil {
		return LoginResult{}, err
	}
	return payload, nil
}

// Logout terminates the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.postForm(ctx, "/api/auth/logout", url.Values{}, nil)
}

// CurrentUser returns the identity of the active session.
func (c *Client) CurrentUser(ctx context.Context) (LoginResult, error) {
	var payload LoginResult
	if err := c.get(ctx, "/api/auth/me", nil, &payload); err != nil {
		return LoginResult{}, err
	}
	return payload, nil
}

// SearchAvailability runs a server-side catalog search. Both parameters are
// substring matches; blank values match everything on that field.
func (c *Client) SearchAvailability(ctx context.Context, book, author string) ([]CatalogItem, error) {
	values := url.Values{}
	values.Set("book", book)
	values.Set("author", author)
	var payload resultsResponse[CatalogItem]
	if err := c.get(ctx, "/api/transactions/availability", values, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// ListBooks retrieves the full catalog.
func (c *Client) ListBooks(ctx context.Context) ([]CatalogItem, error) {
	var payload resultsResponse[CatalogItem]
	if err := c.get(ctx, "/api/reports/books", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// ListActiveIssues retrieves every currently open issue record.
func (c *Client) ListActiveIssues(ctx context.Context) ([]IssueRecord, error) {
	var payload resultsResponse[IssueRecord]
	if err := c.get(ctx, "/api/reports/active-issues", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// IssueBook lends a catalog item to a member.
func (c *Client) IssueBook(ctx context.Context, req IssueRequest) error {
	form := url.Values{}
	form.Set("serial_no", req.SerialNo)
	form.Set("membership_id", req.MembershipID)
	form.Set("issue_date", req.IssueDate)
	form.Set("planned_return", req.PlannedReturn)
	form.Set("remarks", req.Remarks)
	return c.postForm(ctx, "/api/transactions/issue", form, nil)
}

// StartReturn asks the backend to locate the open issue record for the given
// member and serial number. The backend is authoritative for the record and
// its current fine; returnDate is optional and updates the planned return.
func (c *Client) StartReturn(ctx context.Context, membershipID, serialNo, returnDate string) (*IssueRecord, error) {
	form := url.Values{}
	form.Set("membership_id", membershipID)
	form.Set("serial_no", serialNo)
	if returnDate != "" {
		form.Set("return_date", returnDate)
	}
	var payload IssueRecord
	if err := c.postForm(ctx, "/api/transactions/return/start", form, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CompleteReturn commits a return, settling any fine.
func (c *Client) CompleteReturn(ctx context.Context, req CompleteReturnRequest) error {
	form := url.Values{}
	form.Set("issue_id", strconv.FormatInt(req.IssueID, 10))
	form.Set("actual_return_date", req.ActualReturnDate)
	form.Set("fine_paid", strconv.FormatBool(req.FinePaid))
	form.Set("remarks", req.Remarks)
	return c.postForm(ctx, "/api/transactions/fine", form, nil)
}

// FetchReport retrieves a named report as raw rows for generic table display.
func (c *Client) FetchReport(ctx context.Context, name string) ([]map[string]any, error) {
	var payload resultsResponse[map[string]any]
	if err := c.get(ctx, "/api/reports/"+name, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// AddMembership creates a membership record.
func (c *Client) AddMembership(ctx context.Context, form MembershipForm) error {
	values := url.Values{}
	values.Set("membership_id", form.MembershipID)
	values.Set("first_name", form.FirstName)
	values.Set("last_name", form.LastName)
	values.Set("phone", form.Phone)
	values.Set("address", form.Address)
	values.Set("aadhar", form.Aadhar)
	values.Set("start_date", form.StartDate)
	values.Set("plan", form.Plan)
	return c.postForm(ctx, "/api/maintenance/membership/add", values, nil)
}

// GetMembership retrieves a membership record by id.
func (c *Client) GetMembership(ctx context.Context, membershipID string) (*Membership, error) {
	var payload Membership
	if err := c.get(ctx, "/api/maintenance/membership/"+url.PathEscape(membershipID), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateMembership applies an extend or cancel action to a membership.
func (c *Client) UpdateMembership(ctx context.Context, membershipID, action string) (*MembershipUpdate, error) {
	form := url.Values{}
	form.Set("membership_id", membershipID)
	form.Set("action", action)
	var payload MembershipUpdate
	if err := c.postForm(ctx, "/api/maintenance/membership/update", form, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// AddBook creates a catalog item.
func (c *Client) AddBook(ctx context.Context, form BookForm) error {
	values := url.Values{}
	values.Set("serial_no", form.SerialNo)
	values.Set("name", form.Name)
	values.Set("author", form.Author)
	values.Set("category", form.Category)
	values.Set("procurement_date", form.ProcurementDate)
	values.Set("cost", form.Cost)
	values.Set("type", form.Type)
	return c.postForm(ctx, "/api/maintenance/book/add", values, nil)
}

// GetBook retrieves a catalog item by serial number.
func (c *Client) GetBook(ctx context.Context, serialNo string) (*CatalogItem, error) {
	var payload CatalogItem
	if err := c.get(ctx, "/api/maintenance/book/"+url.PathEscape(serialNo), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateBook updates a catalog item's details.
func (c *Client) UpdateBook(ctx context.Context, form BookUpdateForm) error {
	values := url.Values{}
	values.Set("serial_no", form.SerialNo)
	values.Set("name", form.Name)
	values.Set("author", form.Author)
	values.Set("category", form.Category)
	values.Set("status", form.Status)
	values.Set("procurement_date", form.ProcurementDate)
	return c.postForm(ctx, "/api/maintenance/book/update", values, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	rel := &url.URL{Path: path}
	if query != nil {
		rel.RawQuery = query.Encode()
	}
	return c.do(ctx, http.MethodGet, rel, "", dest)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, dest any) error {
	rel := &url.URL{Path: path}
	return c.do(ctx, http.MethodPost, rel, form.Encode(), dest)
}

func (c *Client) do(ctx context.Context, method string, rel *url.URL, body string, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError turns a non-2xx response into *Error, preserving the backend's
// detail message when present.
func decodeError(resp *http.Response) error {
	detail := genericDetail
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Detail != "" {
		detail = payload.Detail
	}
	return &Error{StatusCode: resp.StatusCode, Detail: detail}
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
