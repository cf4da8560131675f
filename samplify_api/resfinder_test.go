package samplify_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resfinderReport = `{
	"seq_regions": {
		"blaB-2;;1;;AF189300": {
			"name": "blaB-2",
			"ref_acc": "AF189300",
			"ref_database": ["ResFinder"],
			"phenotypes": ["ampicillin", "meropenem"],
			"ref_start_pos": 1,
			"ref_end_pos": 747,
			"ref_seq_length": 747,
			"alignment_length": 747,
			"identity": 99.8,
			"coverage": 100.0,
			"pmids": ["10858348"]
		},
		"qacE;;1;;X68232": {
			"name": "qacE",
			"ref_database": ["Disinfinder"],
			"phenotypes": ["ethidium bromide"],
			"identity": 100.0,
			"coverage": 100.0
		},
		"pbp5;;1;;AAK43724.1": {
			"name": "pbp5",
			"ref_acc": "AAK43724.1",
			"ref_database": ["PointFinder"],
			"phenotypes": ["ampicillin"],
			"depth": 98.0
		}
	},
	"phenotypes": {
		"ampicillin": {"key": "ampicillin", "category": "amr", "amr_resistant": true, "amr_resistance": "ampicillin"},
		"meropenem": {"key": "meropenem", "category": "amr", "amr_resistant": false, "amr_resistance": "meropenem"},
		"ethidium bromide": {"key": "ethidium bromide", "category": "stress", "amr_resistant": true, "amr_resistance": "ethidium bromide"}
	},
	"seq_variations": {
		"pbp5;;1;;AAK43724.1;;466;;t": {
			"seq_regions": ["pbp5;;1;;AAK43724.1"],
			"phenotypes": ["ampicillin"],
			"ref_codon": "atg",
			"var_codon": "ttg",
			"ref_aa": "M",
			"var_aa": "L",
			"ref_start_pos": 466,
			"ref_end_pos": 468,
			"substitution": true
		}
	},
	"software_executions": {
		"exec1": {"parameters": {"method": "blast"}}
	},
	"databases": {
		"db1": {"database_name": "ResFinder", "database_version": "2.2.1"}
	}
}`

func TestResFinderParser(t *testing.T) {
	path := writeTestFile(t, "resfinder.json", resfinderReport)

	fragment, err := (&ResFinderParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.ElementTypeResult, 2)

	amrIndex := fragment.ElementTypeResult[0]
	require.Equal(t, AnalysisAmr, amrIndex.Type)
	amr := amrIndex.Result.(ElementTypeResult)

	// gene hits against non resistance databases are excluded
	require.Len(t, amr.Genes, 1)
	gene := amr.Genes[0]
	assert.Equal(t, "blaB-2", gene.GeneSymbol)
	require.Len(t, gene.Phenotypes, 2)
	assert.Equal(t, "beta-lactam", gene.Phenotypes[0].Group)
	assert.Equal(t, []string{"10858348"}, gene.Phenotypes[0].Reference)

	// susceptibility profile
	assert.Equal(t, []string{"ampicillin"}, amr.Phenotypes.Resistant)
	assert.Equal(t, []string{"meropenem"}, amr.Phenotypes.Susceptible)

	// point mutation
	require.Len(t, amr.Variants, 1)
	variant := amr.Variants[0]
	assert.Equal(t, "pbp5", variant.ReferenceSequence)
	assert.Equal(t, "AAK43724.1", variant.Accession)
	assert.Equal(t, "A", variant.RefNt, "codon change reduced to the differing nucleotide")
	assert.Equal(t, "T", variant.AltNt)
	assert.Equal(t, "M", variant.RefAa)
	assert.Equal(t, "L", variant.AltAa)
	assert.Equal(t, "blast", variant.Method)
	require.NotNil(t, variant.Depth)
	assert.InDelta(t, 98.0, *variant.Depth, 1e-9)

	// the stress category carries the biocide hit
	stressIndex := fragment.ElementTypeResult[1]
	require.Equal(t, AnalysisStress, stressIndex.Type)
	stress := stressIndex.Result.(ElementTypeResult)
	assert.Empty(t, stress.Genes, "disinfectant database hits are not resistance genes")
	assert.Equal(t, []string{"ethidium bromide"}, stress.Phenotypes.Resistant)

	// database version is propagated
	require.Len(t, fragment.Softwares, 1)
	assert.Equal(t, SoupDatabase, fragment.Softwares[0].Type)
	assert.Equal(t, "2.2.1", fragment.Softwares[0].Version)
}

func TestResFinderParserIsDeterministic(t *testing.T) {
	path := writeTestFile(t, "resfinder.json", `{
		"seq_regions": {},
		"phenotypes": {},
		"seq_variations": {},
		"databases": {
			"db1": {"database_name": "ResFinder", "database_version": "2.2.1"},
			"db2": {"database_name": "PointFinder", "database_version": "4.0.1"},
			"db3": {"database_name": "Disinfinder", "database_version": "1.2.0"},
			"db4": {"database_name": "SerotypeFinder", "database_version": "1.0.0"},
			"db5": {"database_name": "VirulenceFinder", "database_version": "2.0.4"},
			"db6": {"database_name": "PlasmidFinder", "database_version": "2.1.6"}
		}
	}`)

	first, err := (&ResFinderParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, first.Softwares, 6)

	for run := 0; run < 30; run++ {
		again, err := (&ResFinderParser{}).Parse(path)
		require.NoError(t, err)
		assert.Equal(t, first, again, "repeated parses must yield identical fragments")
	}
}

func TestLookupAntibioticClass(t *testing.T) {
	assert.Equal(t, "beta-lactam", LookupAntibioticClass("Ampicillin"))
	assert.Equal(t, "quinolone", LookupAntibioticClass("ciprofloxacin"))
	assert.Equal(t, "unknown", LookupAntibioticClass("unheard-of drug"))
}

func TestResFinderEmptyReportYieldsPresentResult(t *testing.T) {
	path := writeTestFile(t, "resfinder.json", `{"seq_regions": {}, "phenotypes": {}, "seq_variations": {}}`)

	fragment, err := (&ResFinderParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.ElementTypeResult, 2)

	for _, index := range fragment.ElementTypeResult {
		result := index.Result.(ElementTypeResult)
		assert.Empty(t, result.Genes)
		assert.Empty(t, result.Variants)
		assert.Empty(t, result.Phenotypes.Resistant)
	}
}
