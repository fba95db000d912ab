// Copyright 2020, The Qiita Development Team.

// qp-fastp-minimap2 prepares scheduler submissions for per-sample
// adapter and host filtering.  The submit command turns a set of
// read files into a PBS array job plus a finishing job; the finish
// command is what that finishing job runs to report the outputs back
// to the host.

package main

import (
	"fmt"
	"log"
	"os"
	"path"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/qiita-spots/qp-fastp-minimap2/plan"
	"github.com/qiita-spots/qp-fastp-minimap2/prepinfo"
	"github.com/qiita-spots/qp-fastp-minimap2/qiita"
	"github.com/qiita-spots/qp-fastp-minimap2/refdb"
	"github.com/qiita-spots/qp-fastp-minimap2/submit"
	"github.com/qiita-spots/qp-fastp-minimap2/utils"
)

var rootCmd = &cobra.Command{
	Use:           "qp-fastp-minimap2",
	Short:         "fastp + minimap2 host filtering job submission",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configFlag    string
	forwardFlag   []string
	reverseFlag   []string
	referenceFlag string
	threadsFlag   int
	outDirFlag    string
	prepFlag      string
	urlFlag       string
	jobIDFlag     string
	insecureFlag  bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Write the array and finishing job scripts for a sample set",
	RunE:  runSubmit,
}

var finishCmd = &cobra.Command{
	Use:   "finish [url] [job-id] [out-dir]",
	Short: "Report a completed job's outputs back to the host",
	Args:  cobra.ExactArgs(3),
	RunE:  runFinish,
}

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "List the available reference databases",
	RunE:  runRefs,
}

func init() {

	submitCmd.Flags().StringSliceVar(&forwardFlag, "forward", nil, "forward read files, in sample order")
	submitCmd.Flags().StringSliceVar(&reverseFlag, "reverse", nil, "reverse read files, paired with --forward by position")
	submitCmd.Flags().StringVar(&referenceFlag, "reference", "", "reference database name, or 'None' for filtering only")
	submitCmd.Flags().IntVar(&threadsFlag, "threads", 4, "threads per array task")
	submitCmd.Flags().StringVar(&outDirFlag, "out-dir", "", "job output directory")
	submitCmd.Flags().StringVar(&prepFlag, "prep", "", "preparation information file")
	submitCmd.Flags().StringVar(&urlFlag, "url", "", "host callback URL")
	submitCmd.Flags().StringVar(&jobIDFlag, "job-id", "", "job id, generated when omitted")

	finishCmd.Flags().BoolVar(&insecureFlag, "insecure", false, "skip host certificate verification")

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "configuration file")

	rootCmd.AddCommand(submitCmd, finishCmd, refsCmd)
}

// setupLog mirrors the job logs next to the submission files.
func setupLog(outDir string) (*log.Logger, error) {

	fid, err := os.Create(path.Join(outDir, "qp-fastp-minimap2.log"))
	if err != nil {
		return nil, err
	}

	return log.New(fid, "", log.Ltime), nil
}

func runSubmit(cmd *cobra.Command, args []string) error {

	config, err := utils.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	if outDirFlag == "" {
		return fmt.Errorf("submit: --out-dir is required")
	}
	if urlFlag == "" {
		return fmt.Errorf("submit: --url is required")
	}

	logger, err := setupLog(outDirFlag)
	if err != nil {
		return err
	}

	jobID := jobIDFlag
	if jobID == "" {
		jobID = uuid.New().String()
		logger.Printf("No job id supplied, generated %s", jobID)
	}

	// The host hands over file lists in artifact order; pairing is
	// positional, so both lists are sorted the same way first.
	fwd := append([]string(nil), forwardFlag...)
	rev := append([]string(nil), reverseFlag...)
	sort.Strings(fwd)
	sort.Strings(rev)

	if prepFlag != "" {
		samples, err := prepinfo.Read(prepFlag)
		if err != nil {
			return err
		}
		logger.Printf("Preparation lists %d samples", len(samples))
	}

	database := ""
	if referenceFlag != "" && referenceFlag != "None" {
		entry, err := refdb.Resolve(config.ReferenceDir, referenceFlag)
		if err != nil {
			return err
		}
		database = entry.Index
		logger.Printf("Using reference %s (%s)", entry.Name, entry.Index)
	} else {
		logger.Printf("No reference selected, filtering only")
	}

	pl, err := plan.BuildPlan(fwd, rev, database, threadsFlag, outDirFlag)
	if err != nil {
		return err
	}
	logger.Printf("Planned %d commands, %d output files", len(pl.Commands), len(pl.Manifest))

	job := &submit.Job{
		ID:       jobID,
		URL:      urlFlag,
		OutDir:   outDirFlag,
		Threads:  threadsFlag,
		Commands: pl.Commands,
		Manifest: pl.Manifest,
	}

	mainFp, finishFp, manifestFp, err := job.Write(config)
	if err != nil {
		return err
	}
	logger.Printf("Wrote %s", mainFp)
	logger.Printf("Wrote %s", finishFp)
	logger.Printf("Wrote %s", manifestFp)

	fmt.Println(mainFp)
	fmt.Println(finishFp)
	fmt.Println(manifestFp)

	return nil
}

func runFinish(cmd *cobra.Command, args []string) error {

	url, jobID, outDir := args[0], args[1], args[2]

	client := qiita.NewClient(url, insecureFlag)

	return qiita.Finish(client, jobID, outDir)
}

func runRefs(cmd *cobra.Command, args []string) error {

	config, err := utils.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	entries, err := refdb.List(config.ReferenceDir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%s\t%s\n", e.Name, e.Index)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
