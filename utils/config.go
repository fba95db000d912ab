// Copyright 2020, The Qiita Development Team.

package utils

import (
	"github.com/spf13/viper"
)

type Config struct {

	// The directory holding the reference databases used for host
	// filtering.  Each reference is described by a .bed primer
	// file with a sibling .mmi minimap2 index.
	ReferenceDir string

	// The memory request for each array task.
	Memory string

	// The wall clock limit for each array task.
	Walltime string

	// The memory request for the finishing job.
	FinishMemory string

	// The wall clock limit for the finishing job.
	FinishWalltime string

	// The maximum number of array tasks running at the same time.
	MaxRunning int

	// The contact address placed in the scheduler directives.
	Email string

	// The epilogue script registered with every submitted job.
	Epilogue string

	// The shell line that activates the processing environment
	// inside each job, e.g. sourcing a profile and a conda env.
	Environment string
}

// LoadConfig builds the configuration from defaults, an optional
// configuration file, and the environment.  The reference directory
// is taken from QC_REFERENCE_DB and the activation line from
// ENVIRONMENT, matching the variables the jobs themselves see.
func LoadConfig(fname string) (*Config, error) {

	v := viper.New()

	v.SetDefault("memory", "16g")
	v.SetDefault("walltime", "30:00:00")
	v.SetDefault("finish_memory", "10g")
	v.SetDefault("finish_walltime", "10:00:00")
	v.SetDefault("max_running", 8)
	v.SetDefault("email", "qiita.help@gmail.com")
	v.SetDefault("epilogue", "/home/qiita/qiita-epilogue.sh")

	if err := v.BindEnv("reference_dir", "QC_REFERENCE_DB"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("environment", "ENVIRONMENT"); err != nil {
		return nil, err
	}

	if fname != "" {
		v.SetConfigFile(fname)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	config := &Config{
		ReferenceDir:   v.GetString("reference_dir"),
		Memory:         v.GetString("memory"),
		Walltime:       v.GetString("walltime"),
		FinishMemory:   v.GetString("finish_memory"),
		FinishWalltime: v.GetString("finish_walltime"),
		MaxRunning:     v.GetInt("max_running"),
		Email:          v.GetString("email"),
		Epilogue:       v.GetString("epilogue"),
		Environment:    v.GetString("environment"),
	}

	return config, nil
}
