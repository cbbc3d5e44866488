// Package server holds the HTTP server configuration.
//
// The serve command exposes the latest run summary and the export files over
// HTTP; this package defines the settings it needs (listen port, API key).
// It is primarily used by the core/config package to embed server settings.
package server
