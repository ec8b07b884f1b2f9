// Package preflight provides readiness checks for the encoder binary and
// filesystem paths that filmstrip depends on.
//
// The render command calls Run before starting a job so a missing ffmpeg or
// an unwritable output directory fails fast instead of mid-stream. The
// individual check functions also back the CLI status output.
package preflight
