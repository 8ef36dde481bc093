package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presolar/internal/errors"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "--id=g1", "--si29=-500:1", "--si30=-700:1", "--format=csv", "--probabilities=false")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "PGD ID,PGD Type,PGD Subtype,Error", lines[0])
	assert.Equal(t, "g1,X,X1,", lines[1])
}

func TestClassifyCommandInvalid(t *testing.T) {
	_, err := execute(t, "classify", "--si29=1:+2:-3", "--format=csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_MEASUREMENT")

	_, err = execute(t, "classify", "--c12c13=abc", "--format=csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--c12c13")
}

func TestBatchCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grains.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"PGD ID,PGD Type,d(29Si/28Si),err[d(29Si/28Si)],d(30Si/28Si),err[d(30Si/28Si)]\n"+
			"a,M,50,1,50,1\n"+
			"b,M,-900,1,-700,1\n"), 0644))

	out, err := execute(t, "batch", path, "--format=csv", "--compare", "--workers=2")
	require.NoError(t, err)
	assert.Contains(t, out, "a,M,,M,yes,")
	assert.Contains(t, out, "b,X,X2,M,no,")

	_, err = execute(t, "batch", path, "--format=csv", "--compare", "--fail-on-mismatch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 grains")
}

func TestBatchCommandUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grains.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := execute(t, "batch", path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported), "got %v", err)
	assert.Contains(t, err.Error(), `file type ".xlsx"`)
}

func TestBatchCommandMissingFile(t *testing.T) {
	_, err := execute(t, "batch", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound), "got %v", err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "config", "init", path)
	assert.Error(t, err)

	out, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"default_format": "cli"`)
}

func TestCategoriesCommand(t *testing.T) {
	out, err := execute(t, "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "X0, X1, X2")
	assert.Contains(t, out, "AB1, AB2")
	assert.Less(t, strings.Index(out, "\nM "), strings.Index(out, "\nN "))
}
