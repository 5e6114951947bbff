// Package buffer provides the read-only text documents that hint targets
// are discovered in.
//
// A Buffer keeps its text split into lines so the scanner can walk the
// visible window line by line. Positions are expressed in two systems:
//
//   - ByteOffset: raw byte position in the whole text
//   - Point: 0-indexed line and byte column
//
// Buffers are safe for concurrent use; Reload swaps the content under the
// write lock.
package buffer
