package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbtools/cbgraph/internal/config"
	"github.com/cbtools/cbgraph/internal/convert"
)

// Test Plan for the Watch Command Helpers:
// - convertTree renders the discovered copybooks into the output file
// - a failing conversion leaves the previous output untouched
// - an empty tree is ErrNoInput and creates no output file

func TestConvertTree_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "customer.cpy"), []byte(`
       01 CUSTOMER.
          05 CUST-NO PIC 9(5).
`), 0644))
	outPath := filepath.Join(t.TempDir(), "model.txt")

	err := convertTree(context.Background(), convert.New(), dir, outPath, config.Default())
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class CUSTOMER")
}

func TestConvertTree_FailurePreservesPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.cpy"), []byte("01 NO-PERIOD"), 0644))

	outPath := filepath.Join(t.TempDir(), "model.txt")
	require.NoError(t, os.WriteFile(outPath, []byte("previous run"), 0644))

	err := convertTree(context.Background(), convert.New(), dir, outPath, config.Default())
	require.Error(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(data))
}

func TestConvertTree_EmptyTreeIsErrNoInput(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "model.txt")

	err := convertTree(context.Background(), convert.New(), t.TempDir(), outPath, config.Default())
	assert.ErrorIs(t, err, convert.ErrNoInput)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}
