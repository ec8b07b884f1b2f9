// Package codec converts decoded images into the packed RGBA buffers the
// encoder sink consumes.
package codec
