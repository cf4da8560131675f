package samplify_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMutationNomenclature(t *testing.T) {
	change, err := parseMutationNomenclature("GCG7569GTG")
	require.NoError(t, err)
	assert.Equal(t, "GCG", change.Ref)
	assert.Equal(t, "GTG", change.Alt)
	assert.Equal(t, int64(7569), change.Pos)
	assert.Equal(t, TypeMnv, change.Type)
	assert.Equal(t, SubTypeSubstitution, change.Subtype)

	change, err = parseMutationNomenclature("A450T")
	require.NoError(t, err)
	assert.Equal(t, TypeSnv, change.Type)

	_, err = parseMutationNomenclature("nodigits")
	assert.Error(t, err)
}

const mykrobeHeader = "sample,drug,susceptibility,variants,genes,mykrobe_version,files,probe_sets," +
	"genotype_model,kmer_size,phylo_group,species,lineage,phylo_group_per_covg,species_per_covg," +
	"phylo_group_depth,species_depth\n"

func TestMykrobeParser(t *testing.T) {
	path := writeTestFile(t, "mykrobe.csv", mykrobeHeader+
		"sample1,Rifampicin,R,rpoB_A450T-GCG761109GTG:10:90:99,,0.12.1,f,p,kmer_count,21,"+
		"Mycobacterium_tuberculosis_complex,Mycobacterium_tuberculosis,lineage4.2.1,99.5,98.2,50,48\n"+
		"sample1,Isoniazid,S,,,0.12.1,f,p,kmer_count,21,"+
		"Mycobacterium_tuberculosis_complex,Mycobacterium_tuberculosis,lineage4.2.1,99.5,98.2,50,48\n")

	fragment, err := (&MykrobeParser{}).Parse(path)
	require.NoError(t, err)

	// species
	require.Len(t, fragment.SpeciesPrediction, 1)
	species, ok := fragment.SpeciesPrediction[0].Result.([]SppPrediction)
	require.True(t, ok)
	require.Len(t, species, 1)
	assert.Equal(t, "Mycobacterium tuberculosis", species[0].ScientificName)
	require.NotNil(t, species[0].SpeciesCoverage)
	assert.InDelta(t, 98.2, *species[0].SpeciesCoverage, 1e-9)

	// resistance profile
	require.Len(t, fragment.ElementTypeResult, 1)
	amr, ok := fragment.ElementTypeResult[0].Result.(ElementTypeResult)
	require.True(t, ok)
	assert.Equal(t, []string{"Rifampicin"}, amr.Phenotypes.Resistant)
	assert.Equal(t, []string{"Isoniazid"}, amr.Phenotypes.Susceptible)

	// resistance variant
	require.Len(t, amr.Variants, 1)
	variant := amr.Variants[0]
	assert.Equal(t, "rpoB", variant.ReferenceSequence)
	assert.Equal(t, int64(761109), variant.Start)
	assert.Equal(t, "C", variant.RefNt, "codon change reduced to the differing nucleotide")
	assert.Equal(t, "T", variant.AltNt)
	assert.Equal(t, "A", variant.RefAa)
	assert.Equal(t, "T", variant.AltAa)
	require.NotNil(t, variant.Frequency)
	assert.InDelta(t, 0.9, *variant.Frequency, 1e-9)
	require.NotNil(t, variant.Confidence)
	assert.InDelta(t, 99, *variant.Confidence, 1e-9)

	// lineage
	require.Len(t, fragment.TypingResult, 1)
	lineage, ok := fragment.TypingResult[0].Result.(*LineageResult)
	require.True(t, ok)
	assert.Equal(t, "lineage4", lineage.MainLineage)
	assert.Equal(t, "lineage4.2.1", lineage.Sublineage)

	// tool version
	require.Len(t, fragment.Softwares, 1)
	assert.Equal(t, "0.12.1", fragment.Softwares[0].Version)
}

func TestMykrobeParserRejectsUnknownHeaderShape(t *testing.T) {
	path := writeTestFile(t, "mykrobe.csv", "sample,drug\nsample1,Rifampicin\n")

	_, err := (&MykrobeParser{}).Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported header shape")
}
