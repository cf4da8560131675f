package samplify_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tbprofilerReport = `{
	"schema_version": "1.0",
	"main_lin": "lineage4",
	"sublin": "lineage4.2.1",
	"lineage": [
		{"lineage": "lineage4", "family": "Euro-American", "rd": "None", "fraction": 0.98},
		{"lineage": "lineage4.2", "family": "Euro-American", "rd": "None", "fraction": 0.97}
	],
	"pipeline": {
		"software": [{"process": "variant_calling", "software": "bcftools"}],
		"db_version": {"name": "tbdb", "commit": "5f3c51e"}
	},
	"dr_variants": [{
		"gene_name": "rpoB", "feature_id": "CCP43410", "pos": 761155,
		"ref": "C", "alt": "T", "type": "missense_variant",
		"nucleotide_change": "c.1349C>T", "protein_change": "p.Ser450Leu",
		"depth": 105, "freq": 0.99,
		"annotation": [{"drug": "rifampicin", "confidence": "Assoc w R", "source": "WHO"}],
		"gene_associated_drugs": ["rifampicin"]
	}],
	"other_variants": [{
		"gene_name": "katG", "feature_id": "CCP44349", "pos": 2155168,
		"ref": "A", "alt": "AGG", "type": "frameshift",
		"nucleotide_change": "c.12dupG", "protein_change": "",
		"depth": 80, "freq": 0.95,
		"annotation": [], "gene_associated_drugs": []
	}],
	"qc_fail_variants": [{
		"gene_name": "gyrA", "feature_id": "CCP42723", "pos": 7581,
		"ref": "G", "alt": "T", "type": "missense_variant",
		"nucleotide_change": "c.280G>T", "protein_change": "p.Asp94Tyr",
		"depth": 6, "freq": 0.40,
		"annotation": [], "gene_associated_drugs": []
	}]
}`

func TestTbProfilerParser(t *testing.T) {
	path := writeTestFile(t, "tbprofiler.json", tbprofilerReport)

	fragment, err := (&TbProfilerParser{}).Parse(path)
	require.NoError(t, err)

	// resistance profile
	require.Len(t, fragment.ElementTypeResult, 1)
	amr := fragment.ElementTypeResult[0].Result.(ElementTypeResult)
	assert.Equal(t, []string{"rifampicin"}, amr.Phenotypes.Resistant)
	assert.NotContains(t, amr.Phenotypes.Susceptible, "rifampicin")
	assert.Contains(t, amr.Phenotypes.Susceptible, "isoniazid")

	// variants from all three groups, sorted by gene
	require.Len(t, amr.Variants, 3)
	assert.Equal(t, "gyrA", amr.Variants[0].ReferenceSequence)
	require.NotNil(t, amr.Variants[0].PassedQc)
	assert.False(t, *amr.Variants[0].PassedQc, "the qc fail group keeps its calls flagged")

	katg := amr.Variants[1]
	assert.Equal(t, TypeIndel, katg.VariantType)
	assert.Equal(t, SubTypeInsertion, katg.VariantSubtype)
	assert.Equal(t, "bcftools", katg.Method)

	rpob := amr.Variants[2]
	assert.Equal(t, TypeSnv, rpob.VariantType)
	require.Len(t, rpob.Phenotypes, 1)
	assert.Equal(t, "rifampicin", rpob.Phenotypes[0].Name)
	assert.Equal(t, "WHO", rpob.Phenotypes[0].Source)

	// lineage
	require.Len(t, fragment.TypingResult, 1)
	lineage := fragment.TypingResult[0].Result.(LineageResult)
	assert.Equal(t, "lineage4", lineage.MainLineage)
	require.Len(t, lineage.Lineages, 2)

	// database version
	require.Len(t, fragment.Softwares, 1)
	assert.Equal(t, "tbdb", fragment.Softwares[0].Name)
	assert.Equal(t, SoupDatabase, fragment.Softwares[0].Type)
}

func TestTbProfilerParserRejectsUnsupportedSchema(t *testing.T) {
	path := writeTestFile(t, "tbprofiler.json", `{"schema_version": "9.9"}`)

	_, err := (&TbProfilerParser{}).Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema version")
}
