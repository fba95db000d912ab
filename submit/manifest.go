// Copyright 2020, The Qiita Development Team.

package submit

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/qiita-spots/qp-fastp-minimap2/plan"
)

// WriteManifest writes the (path, role) entries as tab-separated
// lines.  The finishing step reads this file back to build the
// artifact description returned to the host.
func WriteManifest(fname string, entries []plan.Entry) error {

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fid.Close()

	wtr := bufio.NewWriter(fid)
	for _, e := range entries {
		if _, err := fmt.Fprintf(wtr, "%s\t%s\n", e.Path, e.Role); err != nil {
			return err
		}
	}

	return wtr.Flush()
}

// ReadManifest parses a manifest written by WriteManifest.
func ReadManifest(fname string) ([]plan.Entry, error) {

	fid, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fid.Close()

	var entries []plan.Entry
	scanner := bufio.NewScanner(fid)
	lnum := 0
	for scanner.Scan() {
		lnum++
		line := strings.TrimRight(scanner.Text(), "\n")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected two tab-separated fields", fname, lnum)
		}
		entries = append(entries, plan.Entry{Path: fields[0], Role: fields[1]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
