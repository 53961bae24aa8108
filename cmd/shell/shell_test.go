package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trichner/strset/pkg/strset"
)

type scriptReader struct {
	lines []string
	end   error
}

func (r *scriptReader) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", r.end
	}
	l := r.lines[0]
	r.lines = r.lines[1:]
	return l, nil
}

func runScript(t *testing.T, end error, lines ...string) (*strset.Set, string) {
	t.Helper()
	s, err := strset.New()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(s, &scriptReader{lines: lines, end: end}, &out))
	return s, strings.TrimPrefix(out.String(), usage)
}

func TestRun_AddRemove(t *testing.T) {
	s, out := runScript(t, io.EOF,
		"add Monday Tuesday Monday",
		"rm Tuesday Sunday",
		"has Monday",
		"has Tuesday",
		"size",
	)

	want := "size: 2\n" +
		"not found: Sunday\n" +
		"size: 1\n" +
		"true\n" +
		"false\n" +
		"1\n"
	assert.Equal(t, want, out)
	assert.Equal(t, 1, s.Size())
}

func TestRun_List(t *testing.T) {
	_, out := runScript(t, promptui.ErrEOF, "add b a", "ls")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "size: 2", lines[0])
	assert.ElementsMatch(t, []string{"a", "b"}, lines[1:])
}

func TestRun_Quit(t *testing.T) {
	s, out := runScript(t, nil, "add a", "quit", "add b")

	assert.Equal(t, "size: 1\n", out)
	assert.False(t, s.Contains("b"))
}

func TestRun_Interrupt(t *testing.T) {
	_, out := runScript(t, promptui.ErrInterrupt, "", "size")

	assert.Equal(t, "0\n", out)
}

func TestRun_Errors(t *testing.T) {
	_, out := runScript(t, io.EOF, "frobnicate", "has", "dump")

	assert.Contains(t, out, `error: unknown command "frobnicate"`)
	assert.Contains(t, out, "error: has expects exactly one value, got 0")
	assert.Contains(t, out, "total: 0\n")
}

func TestRun_ReadError(t *testing.T) {
	s, err := strset.New()
	require.NoError(t, err)

	err = run(s, &scriptReader{end: io.ErrUnexpectedEOF}, io.Discard)

	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
