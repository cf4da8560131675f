package samplify_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brackenReport = "name\ttaxonomy_id\ttaxonomy_lvl\tkraken_assigned_reads\tadded_reads\tnew_est_reads\tfraction_total_reads\n" +
	"Streptococcus pneumoniae\t1313\tS\t95000\t2000\t97000\t0.95000\n" +
	"Streptococcus mitis\t28037\tS\t3000\t100\t3100\t0.03000\n"

func TestBrackenParser(t *testing.T) {
	path := writeTestFile(t, "bracken.tsv", brackenReport)

	fragment, err := (&BrackenParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.SpeciesPrediction, 1)

	predictions, ok := fragment.SpeciesPrediction[0].Result.([]SppPrediction)
	require.True(t, ok)
	require.Len(t, predictions, 2)

	top := predictions[0]
	assert.Equal(t, "Streptococcus pneumoniae", top.ScientificName)
	require.NotNil(t, top.TaxonomyID)
	assert.Equal(t, int64(1313), *top.TaxonomyID)
	require.NotNil(t, top.FractionTotalReads)
	assert.InDelta(t, 0.95, *top.FractionTotalReads, 1e-9)
}

func TestBrackenParserAppliesCutoff(t *testing.T) {
	path := writeTestFile(t, "bracken.tsv", brackenReport)

	fragment, err := (&BrackenParser{Cutoff: 0.1}).Parse(path)
	require.NoError(t, err)

	predictions := fragment.SpeciesPrediction[0].Result.([]SppPrediction)
	require.Len(t, predictions, 1)
	assert.Equal(t, "Streptococcus pneumoniae", predictions[0].ScientificName)
}

func TestBrackenParserEmptyReport(t *testing.T) {
	path := writeTestFile(t, "bracken.tsv", "")

	fragment, err := (&BrackenParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.SpeciesPrediction, 1)

	predictions := fragment.SpeciesPrediction[0].Result.([]SppPrediction)
	assert.Empty(t, predictions, "an empty report is a valid result with zero predictions")
}
