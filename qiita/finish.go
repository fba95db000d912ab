// Copyright 2020, The Qiita Development Team.

package qiita

import (
	"path"

	"github.com/qiita-spots/qp-fastp-minimap2/submit"
)

// Finish is what the finishing job runs once the array tasks are
// done: read the manifest the submission step left in the output
// directory and register its files as one per-sample FASTQ artifact.
// Any error propagates unretried and leaves the job failed.
func Finish(c *Client, jobID, outDir string) error {

	if err := c.UpdateJobStep(jobID, "Step 3 of 4: Finishing fastp and minimap2"); err != nil {
		return err
	}

	entries, err := submit.ReadManifest(path.Join(outDir, jobID+".out_files.tsv"))
	if err != nil {
		return err
	}

	if err := c.UpdateJobStep(jobID, "Step 4 of 4: Generating new artifact"); err != nil {
		return err
	}

	ainfo := []ArtifactInfo{{
		Name:  "Filtered files",
		Type:  "per_sample_FASTQ",
		Files: entries,
	}}

	return c.CompleteJob(jobID, true, ainfo, "")
}
