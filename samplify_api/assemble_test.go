package samplify_api

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	runInfo := write("run_info.json", `{
		"pipeline": "jasen", "version": "1.0.0",
		"analysis_profile": "mycobacterium_tuberculosis",
		"sequencing_run": "240112_NB501699_0123_AHVJLMBGX",
		"sequencing_platform": "illumina"
	}`)
	qc := write("qc.json", `{
		"schema_version": 2,
		"n_reads": 1000, "n_mapped_reads": 950, "n_read_pairs": 500,
		"mean_cov": 30.5, "pct_above_x": {"10": 99.0},
		"quartile1": 10, "median_cov": 20, "quartile3": 30
	}`)
	mlst := write("mlst.json", `[{"scheme": "mtbc", "sequence_type": "1", "alleles": {"gene1": "5"}}]`)
	snvVcfPath := write("calls.vcf", snvVcf)
	svVcfPath := write("sv.vcf", svVcf)

	config := &SampleConfig{
		SampleID:    "sample-001",
		SampleName:  "patient isolate 1",
		LimsID:      "LIMS-42",
		RunInfo:     runInfo,
		PostAlignQc: qc,
		Mlst:        mlst,
		SnvVcf:      snvVcfPath,
		SvVcf:       svVcfPath,
	}
	targets := []GeneTarget{
		{Gene: "pbp2b", ReferenceSequence: "chr1", Start: 500, End: 2000},
	}

	result, err := Assemble(config, targets)
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, result.SchemaVersion)
	assert.Equal(t, "sample-001", result.SampleID)
	assert.Equal(t, "Illumina", result.Sequencing.Platform)
	assert.Equal(t, []string{"mycobacterium_tuberculosis"}, result.Pipeline.AnalysisProfile)

	require.Len(t, result.Qc, 1)
	require.Len(t, result.TypingResult, 1)

	// 3 small calls from the snv vcf, 3 structural calls from the sv vcf
	assert.Len(t, result.SnvVariants, 2)
	assert.Len(t, result.IndelVariants, 1)
	assert.Len(t, result.SvVariants, 3)

	// the deletion spans the pbp2b target interval
	var deletion *Variant
	for index := range result.SvVariants {
		if result.SvVariants[index].VariantSubtype == SubTypeDeletion {
			deletion = &result.SvVariants[index]
		}
	}
	require.NotNil(t, deletion)
	assert.True(t, deletion.ResistanceRelevant)
	assert.Equal(t, []string{"pbp2b"}, deletion.TargetGenes)

	// variant ids are unique across all groups
	seen := map[int]bool{}
	for _, group := range [][]Variant{result.SnvVariants, result.SvVariants, result.IndelVariants} {
		for _, variant := range group {
			assert.False(t, seen[variant.ID], "duplicate variant id %d", variant.ID)
			seen[variant.ID] = true
		}
	}

	// the result serializes and passes validation on its way out
	content, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"schema_version":2`)
}

func TestAssembleRequiresRunInfo(t *testing.T) {
	config := &SampleConfig{SampleID: "sample-001", RunInfo: "does/not/exist.json"}

	_, err := Assemble(config, nil)
	assert.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	result := validResult()
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, WriteResult(result, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded PipelineResult
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, result.SampleID, decoded.SampleID)
}
