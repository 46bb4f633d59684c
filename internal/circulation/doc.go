// Package circulation holds the pure logic of the lending workflow: fine
// arithmetic, working-set filtering, and form validation.
//
// Nothing here touches the network or the terminal. The UI layer binds these
// functions to concrete controls, which keeps the workflow rules testable
// without a rendered interface. The backend remains authoritative for every
// committed amount; this package only produces the advisory figures and the
// local validation verdicts the operator sees before a request is sent.
package circulation
