// Package app wires configuration, preferences, the API client, and the
// session into a running desk UI.
package app
