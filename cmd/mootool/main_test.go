package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunSingleWithReferenceSet(t *testing.T) {
	dir := t.TempDir()
	data := writeTempFile(t, dir, "front.dat", "2 3\n4 4\n")
	refSet := writeTempFile(t, dir, "ref.dat", "1 5\n2 3\n3 2\n5 1\n")

	require.NoError(t, runSingle(data, "epsilon", "", refSet, false))
	require.NoError(t, runSingle(data, "distance", "", refSet, false))
}

func TestRunSingleWithoutReferenceSet(t *testing.T) {
	dir := t.TempDir()
	data := writeTempFile(t, dir, "front.dat", "2 3\n4 4\n")

	// Epsilon needs a reference set; without one the evaluation fails.
	assert.Error(t, runSingle(data, "epsilon", "", "", false))
}

func TestRunSingleMissingReferenceSetFile(t *testing.T) {
	dir := t.TempDir()
	data := writeTempFile(t, dir, "front.dat", "2 3\n4 4\n")

	err := runSingle(data, "epsilon", "", filepath.Join(dir, "absent.dat"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference set")
}

func TestRunSingleHypervolume(t *testing.T) {
	dir := t.TempDir()
	data := writeTempFile(t, dir, "front.dat", "1 5\n2 3\n3 2\n5 1\n")

	require.NoError(t, runSingle(data, "hypervolume", "6,6", "", false))
}

func TestParsePoint(t *testing.T) {
	point, err := parsePoint(" 6, 6.5 ")
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 6.5}, point)

	_, err = parsePoint("6,x")
	assert.Error(t, err)
}
