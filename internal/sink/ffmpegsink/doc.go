// Package ffmpegsink implements the assembler sink on top of an ffmpeg
// child process. Raw RGBA frames are streamed over stdin at a fixed tick
// rate; variable display durations are realized by repeating a frame until
// the next frame's presentation time.
package ffmpegsink
