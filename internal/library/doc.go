// Package library persists composition history in SQLite.
//
// Every composition built by the CLI or the preview API is recorded with its
// visual selection and timing; timing is updated once audio metadata resolves,
// and each export attempt is stored alongside the composition it rendered.
// Transient SQLITE_BUSY errors are retried with exponential backoff.
package library
