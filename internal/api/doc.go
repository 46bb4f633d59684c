// Package api provides an HTTP client for the library-management backend.
//
// # Overview
//
// The client covers the circulation endpoints (availability search, issue,
// return start, fine commit), the report endpoints, the maintenance
// endpoints, and the auth handshake. Requests use form-encoded bodies and
// the backend answers with JSON; every rejection carries a {"detail": ...}
// payload that is preserved verbatim in *Error.
//
// # Error Handling
//
// Three failure classes reach callers:
//
//   - *Error: the backend rejected the request (4xx/5xx). StatusCode and the
//     server's detail message are available; IsUnauthorized and IsForbidden
//     identify the auth cases the UI must route specially.
//   - Transport errors: connection refused, timeout, DNS failure. Wrapped
//     with "execute request:".
//   - Decode errors: malformed JSON in a 2xx response. Wrapped with
//     "decode response:".
//
// # Session Handling
//
// The client keeps the backend session cookie in an in-memory jar, so Login
// followed by any other call behaves like the browser front end it replaces.
// A 401 from any endpoint means the session expired; the UI reacts by
// returning to the login view.
//
// # Design Rationale
//
// The client is deliberately thin: no retries (the operator corrects input
// and resubmits), no caching (the UI owns its working set), and no
// interpretation of domain conflicts (the backend's detail message is shown
// as-is).
package api
