// Package renderlock guards render destinations with file locks so two
// renders never write the same artifact concurrently.
package renderlock
