// Package renderlog persists the history of render jobs in SQLite so the
// CLI can report past and in-flight renders.
package renderlog
