// Copyright 2020, The Qiita Development Team.

// Package plan builds the per-sample shell commands executed by the
// array job, together with the list of output files each command is
// expected to leave in the job directory.
//
// Planning is pure string and path computation: nothing here touches
// the filesystem or starts a process.  The caller pairs the forward
// and reverse read files by position, so both lists must arrive
// sorted the same way.

package plan

import (
	"bytes"
	"fmt"
	"path"
	"text/template"
)

// Roles attached to manifest entries.  These are the artifact
// filepath types the orchestrating host understands.
const (
	RoleForward = "raw_forward_seqs"
	RoleReverse = "raw_reverse_seqs"
	RoleTrimmed = "trimmed"
)

// Entry names one output file the pipeline will produce, and the
// role it plays in the resulting artifact.
type Entry struct {
	Path string
	Role string
}

// Plan holds one command per sample and the manifest of every output
// file those commands produce.  Forward-role entries form one
// contiguous block of the manifest, followed by the reverse-role
// block.
type Plan struct {
	Commands []string
	Manifest []Entry
}

// sampleParams binds the template fields for one sample.  Every
// template names the fields it needs, so the four variants cannot
// disagree about argument order.
type sampleParams struct {
	Fwd     string
	Rev     string
	FwdOut  string
	RevOut  string
	Db      string
	Threads int
}

// BuildPlan produces the command and manifest for every sample.  rev
// is either empty (single-end) or pairs with fwd by index.  db is the
// resolved minimap2 index path, or empty when no host filtering is
// wanted.  The variant is chosen once from (paired, db) and applies
// to every sample in the invocation.
func BuildPlan(fwd, rev []string, db string, threads int, outDir string) (*Plan, error) {

	if len(fwd) == 0 {
		return nil, fmt.Errorf("plan: no forward read files provided")
	}
	if len(rev) > 0 && len(rev) != len(fwd) {
		return nil, fmt.Errorf("plan: %d forward files but %d reverse files",
			len(fwd), len(rev))
	}

	paired := len(rev) > 0

	var tmpl *template.Template
	switch {
	case paired && db != "":
		tmpl = combinedPaired
	case paired:
		tmpl = filterPaired
	case db != "":
		tmpl = combinedSingle
	default:
		tmpl = filterSingle
	}

	var commands []string
	var fwdEntries, revEntries []Entry
	var buf bytes.Buffer

	for i, f := range fwd {

		p := sampleParams{
			Fwd:     f,
			FwdOut:  path.Join(outDir, path.Base(f)),
			Db:      db,
			Threads: threads,
		}
		if paired {
			p.Rev = rev[i]
			p.RevOut = path.Join(outDir, path.Base(rev[i]))
		}

		buf.Reset()
		if err := tmpl.Execute(&buf, p); err != nil {
			return nil, err
		}
		commands = append(commands, buf.String())

		fwdEntries = append(fwdEntries, Entry{p.FwdOut, RoleForward})
		if paired {
			revEntries = append(revEntries, Entry{p.RevOut, RoleReverse})
		}
	}

	return &Plan{
		Commands: commands,
		Manifest: append(fwdEntries, revEntries...),
	}, nil
}

// trimParams binds the template fields for one primer-trimming
// command.
type trimParams struct {
	Bam     string
	Out     string
	Primers string
	Threads int
}

// BuildTrimPlan produces the commands for the primer-trimming
// pipeline: one ivar trim invocation per alignment file, writing the
// trimmed file under the same basename in outDir.
func BuildTrimPlan(bams []string, primers string, threads int, outDir string) (*Plan, error) {

	if len(bams) == 0 {
		return nil, fmt.Errorf("plan: no alignment files provided")
	}
	if primers == "" {
		return nil, fmt.Errorf("plan: no primer file provided")
	}

	var commands []string
	var manifest []Entry
	var buf bytes.Buffer

	for _, b := range bams {

		p := trimParams{
			Bam:     b,
			Out:     path.Join(outDir, path.Base(b)),
			Primers: primers,
			Threads: threads,
		}

		buf.Reset()
		if err := ivarTrim.Execute(&buf, p); err != nil {
			return nil, err
		}
		commands = append(commands, buf.String())
		manifest = append(manifest, Entry{p.Out, RoleTrimmed})
	}

	return &Plan{Commands: commands, Manifest: manifest}, nil
}
