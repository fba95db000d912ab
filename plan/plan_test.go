// Copyright 2020, The Qiita Development Team.

package plan

import (
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planCase struct {
	Name     string
	Forward  []string
	Reverse  []string
	Database string
	Threads  int
	OutDir   string `toml:"outdir"`
	Commands []string
	Manifest [][]string
}

func loadCases(t *testing.T) []planCase {
	t.Helper()

	var v struct {
		Case []planCase
	}
	_, err := toml.DecodeFile(filepath.Join("testdata", "cases.toml"), &v)
	require.NoError(t, err)
	require.NotEmpty(t, v.Case)

	return v.Case
}

func TestBuildPlanCases(t *testing.T) {

	for _, c := range loadCases(t) {
		c := c
		t.Run(c.Name, func(t *testing.T) {

			pl, err := BuildPlan(c.Forward, c.Reverse, c.Database, c.Threads, c.OutDir)
			require.NoError(t, err)

			assert.Equal(t, c.Commands, pl.Commands)

			var manifest []Entry
			for _, m := range c.Manifest {
				manifest = append(manifest, Entry{Path: m[0], Role: m[1]})
			}
			assert.Equal(t, manifest, pl.Manifest)
		})
	}
}

func TestBuildPlanOneCommandPerSample(t *testing.T) {

	fwd := []string{"a1.fq", "b1.fq", "c1.fq"}
	rev := []string{"a2.fq", "b2.fq", "c2.fq"}

	pl, err := BuildPlan(fwd, rev, "/refs/artifacts.mmi", 2, "/out")
	require.NoError(t, err)
	assert.Len(t, pl.Commands, len(fwd))
	assert.Len(t, pl.Manifest, 2*len(fwd))

	pl, err = BuildPlan(fwd, nil, "", 2, "/out")
	require.NoError(t, err)
	assert.Len(t, pl.Commands, len(fwd))
	assert.Len(t, pl.Manifest, len(fwd))
}

func TestBuildPlanManifestGrouping(t *testing.T) {

	fwd := []string{"a1.fq", "b1.fq", "c1.fq"}
	rev := []string{"a2.fq", "b2.fq", "c2.fq"}

	pl, err := BuildPlan(fwd, rev, "", 2, "/out")
	require.NoError(t, err)

	var roles []string
	for _, e := range pl.Manifest {
		roles = append(roles, e.Role)
	}
	assert.Equal(t, []string{
		RoleForward, RoleForward, RoleForward,
		RoleReverse, RoleReverse, RoleReverse,
	}, roles)
}

func TestBuildPlanVariantIsPure(t *testing.T) {

	fwd := []string{"a1.fq"}
	rev := []string{"a2.fq"}

	first, err := BuildPlan(fwd, rev, "/refs/artifacts.mmi", 2, "/out")
	require.NoError(t, err)
	second, err := BuildPlan(fwd, rev, "/refs/artifacts.mmi", 2, "/out")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildPlanLengthMismatch(t *testing.T) {

	_, err := BuildPlan([]string{"a1.fq", "b1.fq"}, []string{"a2.fq"}, "", 2, "/out")
	assert.Error(t, err)
}

func TestBuildPlanNoForward(t *testing.T) {

	_, err := BuildPlan(nil, nil, "", 2, "/out")
	assert.Error(t, err)
}

func TestBuildTrimPlan(t *testing.T) {

	bams := []string{"/in/a.bam", "/in/b.bam"}

	pl, err := BuildTrimPlan(bams, "/refs/artifacts.bed", 2, "/out")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ivar trim -x 2 -e -b /refs/artifacts.bed -i /in/a.bam -p /out/a.bam",
		"ivar trim -x 2 -e -b /refs/artifacts.bed -i /in/b.bam -p /out/b.bam",
	}, pl.Commands)

	assert.Equal(t, []Entry{
		{Path: "/out/a.bam", Role: RoleTrimmed},
		{Path: "/out/b.bam", Role: RoleTrimmed},
	}, pl.Manifest)
}

func TestBuildTrimPlanNoPrimers(t *testing.T) {

	_, err := BuildTrimPlan([]string{"/in/a.bam"}, "", 2, "/out")
	assert.Error(t, err)
}
