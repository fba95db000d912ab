// Copyright 2020, The Qiita Development Team.

// Package refdb enumerates the reference databases available for
// host filtering and resolves a user-supplied name to one of them.

package refdb

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Entry is one reference database in the catalog.  A database is
// named by its .bed primer-description file; the minimap2 index is
// the sibling .mmi file with the same stem.
type Entry struct {
	Name    string
	Primers string
	Index   string
}

// NotFoundError reports a name that matched no catalog entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("refdb: no reference matches %q", e.Name)
}

// AmbiguousError reports a name that matched more than one catalog
// entry.  Resolution requires exactly one match; the caller must
// supply a more specific name.
type AmbiguousError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("refdb: reference %q is ambiguous, matches %s",
		e.Name, strings.Join(e.Matches, ", "))
}

// List returns the catalog entries found in dir.  Only databases
// with a .bed description file are listed; the human reference has
// no such file by convention, so it never appears here.
func List(dir string) ([]Entry, error) {

	beds, err := filepath.Glob(filepath.Join(dir, "*.bed"))
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, b := range beds {
		name := strings.TrimSuffix(filepath.Base(b), ".bed")
		entries = append(entries, Entry{
			Name:    name,
			Primers: b,
			Index:   filepath.Join(dir, name+".mmi"),
		})
	}

	return entries, nil
}

// Resolve matches name against the catalog in dir by substring and
// returns the single matching entry.  Zero matches yield a
// NotFoundError and two or more an AmbiguousError.
func Resolve(dir, name string) (Entry, error) {

	entries, err := List(dir)
	if err != nil {
		return Entry{}, err
	}

	var hits []Entry
	for _, e := range entries {
		if strings.Contains(e.Name, name) {
			hits = append(hits, e)
		}
	}

	switch len(hits) {
	case 1:
		return hits[0], nil
	case 0:
		return Entry{}, &NotFoundError{Name: name}
	default:
		var names []string
		for _, h := range hits {
			names = append(names, h.Name)
		}
		return Entry{}, &AmbiguousError{Name: name, Matches: names}
	}
}
