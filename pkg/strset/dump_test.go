package strset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	s := newSet(t,
		WithInitialCapacity(4),
		WithMaxLoad(1),
		WithHasher(fixedHasher(map[string]uint64{"a": 1, "b": 2, "c": 6})))
	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(v))
	}
	_, err := s.Remove("a")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, s.Dump(&buf))

	want := "0x11\n" +
		"   2: 2 -> b\n" +
		"   3: 6 -> c\n" +
		"total: 2\n"
	assert.Equal(t, want, buf.String())
}
