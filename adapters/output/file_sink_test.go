package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_ResetTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content from a previous run"), 0644))

	sink := NewFileSink(path)
	require.NoError(t, sink.Reset([]byte("[")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[", string(got))
}

func TestFileSink_AppendSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.php")
	sink := NewFileSink(path)

	require.NoError(t, sink.Reset([]byte("[")))
	require.NoError(t, sink.Append([]byte("{}")))
	require.NoError(t, sink.Append([]byte(",")))
	require.NoError(t, sink.Append([]byte("{}")))

	// content is durable after every write
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[{},{}", string(got))

	require.NoError(t, sink.Append([]byte("]")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[{},{}]", string(got))
}

func TestFileSink_OpenFailure(t *testing.T) {
	dir := t.TempDir()
	// a directory cannot be opened for writing
	sink := NewFileSink(dir)

	err := sink.Append([]byte("x"))
	assert.Error(t, err)
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, sink.Append([]byte("junk")))
	require.NoError(t, sink.Reset([]byte("[")))
	require.NoError(t, sink.Append([]byte("]")))

	assert.Equal(t, "[]", sink.String())
	assert.Equal(t, 2, sink.Writes)
}
