// Package config handles loading the libdesk configuration file.
//
// Resolution order: an explicit path when given, otherwise
// ~/.config/libdesk/config.toml, otherwise hardcoded defaults. A missing
// file is not an error, so libdesk works out of the box against a backend on
// localhost. After the file, a .env file and LIBDESK_SERVER_URL /
// LIBDESK_TIMEOUT_SECONDS environment variables are applied on top.
//
// Example config.toml:
//
//	server_url = "http://127.0.0.1:8000"
//	timeout_seconds = 10
//
// The package is read-only and stateless: Load runs once at startup and
// returns an immutable Config.
package config
