// Copyright 2020, The Qiita Development Team.

// Package prepinfo reads the preparation-information file attached
// to a study: a tab-separated table with one row per sample.  The
// pipeline itself only needs the file to be well formed, since the
// read files are paired by input order rather than by run prefix,
// but a preparation without the run_prefix column cannot have been
// produced correctly and is rejected up front.

package prepinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// Sample is one row of the preparation.
type Sample struct {
	Name      string
	RunPrefix string
}

// Read parses the preparation-information file.  Snappy-compressed
// files (.sz) are handled transparently.
func Read(fname string) ([]Sample, error) {

	fid, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fid.Close()

	var rdr io.Reader = fid
	if strings.HasSuffix(fname, ".sz") {
		rdr = snappy.NewReader(fid)
	}

	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("prepinfo: %s is empty", fname)
	}

	header := strings.Split(scanner.Text(), "\t")
	nameCol, prefixCol := -1, -1
	for i, h := range header {
		switch h {
		case "sample_name":
			nameCol = i
		case "run_prefix":
			prefixCol = i
		}
	}
	if nameCol == -1 {
		return nil, fmt.Errorf("prepinfo: missing sample_name column in your preparation")
	}
	if prefixCol == -1 {
		return nil, fmt.Errorf("prepinfo: missing run_prefix column in your preparation")
	}

	var samples []Sample
	lnum := 1
	for scanner.Scan() {
		lnum++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= nameCol || len(fields) <= prefixCol {
			return nil, fmt.Errorf("prepinfo: %s:%d: short row", fname, lnum)
		}
		samples = append(samples, Sample{
			Name:      fields[nameCol],
			RunPrefix: fields[prefixCol],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
