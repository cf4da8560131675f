package samplify_api

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAlleleCall(t *testing.T) {
	call, err := normalizeAlleleCall("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), call)

	call, err = normalizeAlleleCall("12,13")
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "13"}, call)

	call, err = normalizeAlleleCall("12?")
	require.NoError(t, err)
	assert.Equal(t, "partial", call)

	call, err = normalizeAlleleCall("~12")
	require.NoError(t, err)
	assert.Equal(t, "novel", call)

	call, err = normalizeAlleleCall("-")
	require.NoError(t, err)
	assert.Nil(t, call)

	_, err = normalizeAlleleCall("garbage!")
	assert.Error(t, err)
}

func writeTestFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMlstParser(t *testing.T) {
	path := writeTestFile(t, "mlst.json", `[{
		"scheme": "spneumoniae",
		"sequence_type": "180",
		"alleles": {"aroE": "7", "gdh": "15", "gki": "2", "recP": "10", "spi": "-", "xpt": "~1", "ddl": "14"}
	}]`)

	fragment, err := (&MlstParser{}).Parse(path)
	require.NoError(t, err)
	require.Len(t, fragment.TypingResult, 1)

	index := fragment.TypingResult[0]
	assert.Equal(t, AnalysisMlst, index.Type)
	assert.Equal(t, SoftwareMlst, index.Software)

	result, ok := index.Result.(TypingResultMlst)
	require.True(t, ok)
	assert.Equal(t, "spneumoniae", result.Scheme)
	require.NotNil(t, result.SequenceType)
	assert.Equal(t, int64(180), *result.SequenceType)
	assert.Equal(t, int64(7), result.Alleles["aroE"])
	assert.Nil(t, result.Alleles["spi"])
	assert.Equal(t, "novel", result.Alleles["xpt"])
}

func TestMlstParserUntypeableSequenceType(t *testing.T) {
	path := writeTestFile(t, "mlst.json", `[{
		"scheme": "senterica",
		"sequence_type": "-",
		"alleles": {"aroC": "1"}
	}]`)

	fragment, err := (&MlstParser{}).Parse(path)
	require.NoError(t, err)

	result := fragment.TypingResult[0].Result.(TypingResultMlst)
	assert.Nil(t, result.SequenceType)
}

func TestMlstParserRejectsMultiplePredictions(t *testing.T) {
	path := writeTestFile(t, "mlst.json", `[{"scheme": "a", "alleles": {}}, {"scheme": "b", "alleles": {}}]`)

	_, err := (&MlstParser{}).Parse(path)
	assert.Error(t, err)
}
