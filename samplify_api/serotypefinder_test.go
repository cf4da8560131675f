package samplify_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerotypeFinderParser(t *testing.T) {
	path := writeTestFile(t, "serotype.json", `{"serotypefinder": {"results": {
		"O_type": {
			"hit1": {"gene": "wzx", "serotype": "O26", "accession": "AB123", "position_in_ref": "1..1200",
				"template_length": 1200, "HSP_length": 1100, "identity": 98.5, "coverage": 95.0},
			"hit2": {"gene": "wzy", "serotype": "O26", "accession": "AB124", "position_in_ref": "1..900",
				"template_length": 900, "HSP_length": 800, "identity": 99.9, "coverage": 92.0}
		},
		"H_type": "No H type found"
	}}}`)

	fragment, err := (&SerotypeFinderParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.TypingResult, 2)

	oType := fragment.TypingResult[0]
	assert.Equal(t, AnalysisOType, oType.Type)
	gene, ok := oType.Result.(*Gene)
	require.True(t, ok)
	assert.Equal(t, "wzy", gene.GeneSymbol, "best hit is ranked by identity")
	assert.Equal(t, ElementAntigen, gene.ElementType)
	require.NotNil(t, gene.RefStartPos)
	assert.Equal(t, int64(1), *gene.RefStartPos)
	require.NotNil(t, gene.RefEndPos)
	assert.Equal(t, int64(900), *gene.RefEndPos)

	hType := fragment.TypingResult[1]
	assert.Equal(t, AnalysisHType, hType.Type)
	assert.Nil(t, hType.Result, "a string result means no antigen was found")
}

func TestSerotypeFinderParserBreaksTiesDeterministically(t *testing.T) {
	path := writeTestFile(t, "serotype.json", `{"serotypefinder": {"results": {
		"O_type": {
			"hit2": {"gene": "wzy", "serotype": "O26", "position_in_ref": "1..900",
				"identity": 99.9, "coverage": 95.0},
			"hit1": {"gene": "wzx", "serotype": "O26", "position_in_ref": "1..1200",
				"identity": 99.9, "coverage": 95.0}
		}
	}}}`)

	for run := 0; run < 30; run++ {
		fragment, err := (&SerotypeFinderParser{}).Parse(path)
		require.NoError(t, err)
		require.Len(t, fragment.TypingResult, 1)
		gene, ok := fragment.TypingResult[0].Result.(*Gene)
		require.True(t, ok)
		assert.Equal(t, "wzx", gene.GeneSymbol, "equal scores keep the first hit in key order")
	}
}

func TestSerotypeFinderParserEmptyResultIsNoCall(t *testing.T) {
	path := writeTestFile(t, "serotype.json", `{"serotypefinder": {"results": {"O_type": {}, "H_type": {}}}}`)

	fragment, err := (&SerotypeFinderParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.TypingResult, 2)
	for _, index := range fragment.TypingResult {
		assert.Nil(t, index.Result)
	}
}

func TestSerotypeFinderParserMissingResultsBlock(t *testing.T) {
	path := writeTestFile(t, "serotype.json", `{"serotypefinder": {}}`)

	_, err := (&SerotypeFinderParser{}).Parse(path)
	assert.Error(t, err)
}
