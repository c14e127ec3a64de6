// package stream decodes the catalog's newline-delimited JSON streams.
//
// Response bodies arrive in arbitrary-sized chunks that are not aligned to
// record boundaries. [LineBuffer] reassembles complete lines across chunk
// splits; [Records] drives a whole [io.Reader] through it. Classification of
// the decoded records into [Event] values lives in classifier.go.
package stream

import (
	"bytes"
	"context"
	"io"
)

// readSize is the chunk size used when draining a response body.
const readSize = 4096

// LineBuffer incrementally splits a byte stream into newline-terminated records.
//
// Buffering is byte-oriented, so multi-byte characters split across chunk
// boundaries are reassembled intact. A trailing line that never sees its
// newline is held until the next Feed and dropped at end of stream: an
// unterminated tail is a truncated record, not valid JSON.
type LineBuffer struct {
	rest []byte
}

// Feed appends chunk to the buffered remainder and returns every complete,
// non-blank line now available. Returned slices are copies and remain valid
// after subsequent calls.
func (b *LineBuffer) Feed(chunk []byte) [][]byte {
	b.rest = append(b.rest, chunk...)

	var lines [][]byte
	for {
		idx := bytes.IndexByte(b.rest, '\n')
		if idx < 0 {
			return lines
		}

		line := bytes.TrimSpace(b.rest[:idx])
		b.rest = b.rest[idx+1:]

		if len(line) > 0 {
			lines = append(lines, append([]byte(nil), line...))
		}
	}
}

// Pending reports whether an unterminated partial line is currently buffered.
func (b *LineBuffer) Pending() bool {
	return len(bytes.TrimSpace(b.rest)) > 0
}

// Records reads r to completion and invokes handle once per complete line, in
// stream order. A non-nil error from handle stops the drain and is returned.
// Context cancellation is checked between reads so an abandoned stream
// releases its connection promptly.
func Records(ctx context.Context, r io.Reader, handle func(line []byte) error) error {
	var buf LineBuffer
	chunk := make([]byte, readSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := r.Read(chunk)
		if n > 0 {
			for _, line := range buf.Feed(chunk[:n]) {
				if handleErr := handle(line); handleErr != nil {
					return handleErr
				}
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
