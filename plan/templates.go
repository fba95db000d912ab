// Copyright 2020, The Qiita Development Team.

package plan

import "text/template"

// The four pipeline shapes.  fastp always performs the quality and
// length filtering (-l 100); the combined variants pipe its output
// into minimap2 against the selected reference and keep only the
// unmapped reads via samtools fastq, which is what removes the host
// sequence from the sample.

const (
	filterPairedText = `fastp -l 100 -w {{.Threads}} -i {{.Fwd}} -I {{.Rev}} ` +
		`-o {{.FwdOut}} -O {{.RevOut}}`

	filterSingleText = `fastp -l 100 -w {{.Threads}} -i {{.Fwd}} -o {{.FwdOut}}`

	// -f 12 keeps pairs where neither mate mapped; -F 256 drops
	// secondary alignments.
	combinedPairedText = `fastp -l 100 -w {{.Threads}} -i {{.Fwd}} -I {{.Rev}} --stdout | ` +
		`minimap2 -ax sr -t {{.Threads}} {{.Db}} - -a | ` +
		`samtools fastq -@ {{.Threads}} -f 12 -F 256 -1 {{.FwdOut}} -2 {{.RevOut}}`

	combinedSingleText = `fastp -l 100 -w {{.Threads}} -i {{.Fwd}} --stdout | ` +
		`minimap2 -ax sr -t {{.Threads}} {{.Db}} - -a | ` +
		`samtools fastq -@ {{.Threads}} -f 4 -0 {{.FwdOut}}`

	ivarTrimText = `ivar trim -x {{.Threads}} -e -b {{.Primers}} -i {{.Bam}} -p {{.Out}}`
)

var (
	filterPaired   = template.Must(template.New("filter-paired").Parse(filterPairedText))
	filterSingle   = template.Must(template.New("filter-single").Parse(filterSingleText))
	combinedPaired = template.Must(template.New("combined-paired").Parse(combinedPairedText))
	combinedSingle = template.Must(template.New("combined-single").Parse(combinedSingleText))
	ivarTrim       = template.Must(template.New("ivar-trim").Parse(ivarTrimText))
)
