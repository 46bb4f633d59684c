// Package ui implements the terminal front end for the circulation desk.
//
// The UI is a single bubbletea program. One root Model owns every page and
// all workflow state; commands are the only place network calls happen, and
// their results come back as typed messages. While a request is in flight
// the model drops input, so no button-equivalent can be submitted twice.
//
// Workflow state that outlives a page (the logged-in identity and the
// single active return) lives in state.Session because the return and fine
// pages share it.
package ui
