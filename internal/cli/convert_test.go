package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbtools/cbgraph/internal/config"
)

// Test Plan for the Convert Command Helpers:
// - expandArgs passes files through and expands directories via discovery
// - expandArgs fails on missing paths
// - bufferedOutput defaults to stdout and touches the file only on flush
// - the progress reporter stays silent when quiet or for a single file

func TestExpandArgs_FilesPassThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customer.cpy")
	require.NoError(t, os.WriteFile(path, []byte("01 REC.\n"), 0644))

	paths, err := expandArgs([]string{path}, config.Default())
	require.NoError(t, err)
	assert.Equal(t, []string{path}, paths)
}

func TestExpandArgs_DirectoriesExpand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "billing"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ACCT.cpy"), []byte("01 REC.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "billing", "INVOICE.cbl"), []byte("01 REC.\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644))

	paths, err := expandArgs([]string{dir}, config.Default())
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestExpandArgs_MissingPathFails(t *testing.T) {
	_, err := expandArgs([]string{filepath.Join(t.TempDir(), "nope.cpy")}, config.Default())
	assert.Error(t, err)
}

func TestBufferedOutput_DefaultsToStdout(t *testing.T) {
	w, flush := bufferedOutput("")
	assert.Equal(t, os.Stdout, w)
	assert.NoError(t, flush())
}

func TestBufferedOutput_WritesOnlyOnFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.dot")
	w, flush := bufferedOutput(path)

	_, err := w.Write([]byte("digraph"))
	require.NoError(t, err)

	// nothing on disk until the conversion has succeeded
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, flush())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "digraph", string(data))
}

func TestBufferedOutput_PreservesExistingFileUntilFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous run"), 0644))

	w, _ := bufferedOutput(path)
	_, err := w.Write([]byte("new run"))
	require.NoError(t, err)

	// flush never called: the earlier output must survive
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(data))
}

func TestConvertProgressReporter_QuietSuppressesBar(t *testing.T) {
	r := NewConvertProgressReporter(true)
	r.OnConvertStart(10)
	assert.Nil(t, r.fileBar)
	r.OnFileParsed(1, 10, "a.cpy")
	r.OnConvertComplete(3, time.Second)
}

func TestConvertProgressReporter_SingleFileSkipsBar(t *testing.T) {
	r := NewConvertProgressReporter(false)
	r.OnConvertStart(1)
	assert.Nil(t, r.fileBar)
}
