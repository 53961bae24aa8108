package strset

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a debug view of the table to w: one line with a character per
// bucket ('1' occupied, '0' empty, 'x' deleted), a "hash -> value" line for
// every occupied bucket and the total count. The format is not stable.
func (s *Set) Dump(w io.Writer) error {
	_, err := io.WriteString(w, s.DebugString())
	return err
}

func (s *Set) DebugString() string {
	var buf strings.Builder
	for _, b := range s.buckets {
		switch b.state {
		case bucketOccupied:
			buf.WriteByte('1')
		case bucketDeleted:
			buf.WriteByte('x')
		default:
			buf.WriteByte('0')
		}
	}
	buf.WriteByte('\n')

	for i, b := range s.buckets {
		if b.state == bucketOccupied {
			fmt.Fprintf(&buf, "%4d: %d -> %s\n", i, b.hash, b.value)
		}
	}
	fmt.Fprintf(&buf, "total: %d\n", s.cardinality)
	return buf.String()
}
