// Copyright 2020, The Qiita Development Team.

// Package submit renders the scheduler submission files for a
// planned job: the array-details file holding one command per line,
// the array-job script whose tasks each execute their own line, the
// finishing-job script that reports back to the host, and the output
// manifest read back by the finishing step.

package submit

import (
	"fmt"
	"os"
	"path"
	"strings"
	"text/template"

	"golang.org/x/sys/unix"

	"github.com/qiita-spots/qp-fastp-minimap2/plan"
	"github.com/qiita-spots/qp-fastp-minimap2/utils"
)

// DetailsName is the fixed name of the array-details file inside the
// job's output directory.  The array script resolves its own command
// by line number from this file.
const DetailsName = "fastp_minimap2.array-details"

// Job collects everything needed to write the submission files.
type Job struct {
	ID       string
	URL      string
	OutDir   string
	Threads  int
	Commands []string
	Manifest []plan.Entry
}

const mainScriptText = `#!/bin/bash
#PBS -M {{.Email}}
#PBS -N {{.ID}}
#PBS -l nodes=1:ppn={{.Threads}}
#PBS -l walltime={{.Walltime}}
#PBS -l mem={{.Memory}}
#PBS -o {{.OutDir}}/{{.ID}}_${PBS_ARRAYID}.log
#PBS -e {{.OutDir}}/{{.ID}}_${PBS_ARRAYID}.err
#PBS -t 1-{{.Tasks}}%{{.MaxRunning}}
#PBS -l epilogue={{.Epilogue}}
set -e
cd {{.OutDir}}
{{.Environment}}
date
hostname
echo ${PBS_JOBID} ${PBS_ARRAYID}
offset=${PBS_ARRAYID}
step=$(( $offset - 0 ))
cmd=$(head -n $step {{.Details}} | tail -n 1)
eval $cmd
set +e
date
`

const finishScriptText = `#!/bin/bash
#PBS -M {{.Email}}
#PBS -N finish-{{.ID}}
#PBS -l nodes=1:ppn=1
#PBS -l walltime={{.FinishWalltime}}
#PBS -l mem={{.FinishMemory}}
#PBS -o {{.OutDir}}/finish-{{.ID}}.log
#PBS -e {{.OutDir}}/finish-{{.ID}}.err
#PBS -l epilogue={{.Epilogue}}
set -e
cd {{.OutDir}}
{{.Environment}}
date
hostname
echo $PBS_JOBID
qp-fastp-minimap2 finish {{.URL}} {{.ID}} {{.OutDir}}
date
`

var (
	mainScript   = template.Must(template.New("main-qsub").Parse(mainScriptText))
	finishScript = template.Must(template.New("finish-qsub").Parse(finishScriptText))
)

// scriptParams merges the job with the resource configuration for
// template rendering.
type scriptParams struct {
	ID             string
	URL            string
	OutDir         string
	Details        string
	Threads        int
	Tasks          int
	MaxRunning     int
	Email          string
	Memory         string
	Walltime       string
	FinishMemory   string
	FinishWalltime string
	Epilogue       string
	Environment    string
}

// Write renders the submission files into the job's output
// directory and returns the paths of the array script, the finishing
// script, and the output manifest.
func (job *Job) Write(config *utils.Config) (string, string, string, error) {

	if err := checkOutDir(job.OutDir); err != nil {
		return "", "", "", err
	}
	if len(job.Commands) == 0 {
		return "", "", "", fmt.Errorf("submit: job %s has no commands", job.ID)
	}

	detailsFp := path.Join(job.OutDir, DetailsName)
	if err := writeFile(detailsFp, strings.Join(job.Commands, "\n")+"\n"); err != nil {
		return "", "", "", err
	}

	params := scriptParams{
		ID:             job.ID,
		URL:            job.URL,
		OutDir:         job.OutDir,
		Details:        detailsFp,
		Threads:        job.Threads,
		Tasks:          len(job.Commands),
		MaxRunning:     config.MaxRunning,
		Email:          config.Email,
		Memory:         config.Memory,
		Walltime:       config.Walltime,
		FinishMemory:   config.FinishMemory,
		FinishWalltime: config.FinishWalltime,
		Epilogue:       config.Epilogue,
		Environment:    config.Environment,
	}

	mainFp := path.Join(job.OutDir, job.ID+".qsub")
	if err := renderFile(mainFp, mainScript, params); err != nil {
		return "", "", "", err
	}

	finishFp := path.Join(job.OutDir, job.ID+".finish.qsub")
	if err := renderFile(finishFp, finishScript, params); err != nil {
		return "", "", "", err
	}

	manifestFp := path.Join(job.OutDir, job.ID+".out_files.tsv")
	if err := WriteManifest(manifestFp, job.Manifest); err != nil {
		return "", "", "", err
	}

	return mainFp, finishFp, manifestFp, nil
}

// checkOutDir verifies that dir exists, is a directory, and is
// writable by this process.
func checkOutDir(dir string) error {

	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("submit: %s is not a directory", dir)
	}
	if err := unix.Access(dir, unix.W_OK); err != nil {
		return fmt.Errorf("submit: %s is not writable: %v", dir, err)
	}

	return nil
}

func writeFile(fname, content string) error {

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fid.Close()

	_, err = fid.WriteString(content)
	return err
}

func renderFile(fname string, tmpl *template.Template, params scriptParams) error {

	fid, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer fid.Close()

	return tmpl.Execute(fid, params)
}
