// Package assembler turns an ordered sequence of still images into a video
// stream. Frames are prepared concurrently and in any order, buffered in a
// sparse pending store, and committed to the output sink strictly in
// submission order by a single sequencer. Memory is bounded by high/low
// watermarks on frames buffered ahead of the committed position, and the
// first failure poisons the stream: in-flight preparation still finishes,
// but nothing past the failing frame ever reaches the sink.
package assembler
