// Package faults defines the sentinel error markers shared across the
// rendering pipeline and the helpers that attach stage context to failures.
package faults
