// Copyright 2020, The Qiita Development Team.

package refdb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCatalog fills a temp dir with two described references plus a
// human index that has no .bed file and must stay hidden.
func newCatalog(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, f := range []string{"artifacts.bed", "empty.bed", "artifacts.mmi", "empty.mmi", "human.mmi"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x\n"), 0644))
	}

	return dir
}

func TestList(t *testing.T) {

	dir := newCatalog(t)

	entries, err := List(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.ElementsMatch(t, []string{"artifacts", "empty"}, names)

	for _, e := range entries {
		assert.Equal(t, filepath.Join(dir, e.Name+".bed"), e.Primers)
		assert.Equal(t, filepath.Join(dir, e.Name+".mmi"), e.Index)
	}
}

func TestResolve(t *testing.T) {

	dir := newCatalog(t)

	entry, err := Resolve(dir, "artifacts")
	require.NoError(t, err)
	assert.Equal(t, "artifacts", entry.Name)
	assert.Equal(t, filepath.Join(dir, "artifacts.mmi"), entry.Index)

	// Substring matching is enough when it stays unique.
	entry, err = Resolve(dir, "emp")
	require.NoError(t, err)
	assert.Equal(t, "empty", entry.Name)
}

func TestResolveNotFound(t *testing.T) {

	dir := newCatalog(t)

	_, err := Resolve(dir, "missing")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.Name)

	// The human reference is not in the catalog.
	_, err = Resolve(dir, "human")
	require.True(t, errors.As(err, &nf))
}

func TestResolveAmbiguous(t *testing.T) {

	dir := newCatalog(t)

	// "t" occurs in both artifacts and empty.
	_, err := Resolve(dir, "t")
	var amb *AmbiguousError
	require.True(t, errors.As(err, &amb))
	assert.ElementsMatch(t, []string{"artifacts", "empty"}, amb.Matches)
}
