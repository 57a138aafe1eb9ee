package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juanalytics/scf-lite/internal/scf"
)

// fullResult carries every echoed field the calculation records; the public
// report must drop all of them.
func fullResult() *scf.Result {
	return &scf.Result{
		Energy:         -74.962926,
		Converged:      true,
		Iterations:     9,
		Method:         scf.RHF,
		Charge:         0,
		Spin:           0,
		Basis:          "sto-3g",
		AtomCount:      3,
		AlphaElectrons: 5,
		BetaElectrons:  5,
		ElapsedSeconds: 1.234,
	}
}

func TestMapContainsOnlyPublicFields(t *testing.T) {
	m := New(fullResult()).Map()

	assert.Equal(t, map[string]interface{}{
		"energia":     -74.962926,
		"convergio":   true,
		"iteraciones": 9,
		"metodo":      "RHF",
	}, m)
}

func TestMapOmitsMethodWhenAbsent(t *testing.T) {
	res := fullResult()
	res.Method = ""

	m := New(res).Map()
	assert.NotContains(t, m, "metodo")
	assert.Len(t, m, 3)
}

func TestJSONDropsEchoedFields(t *testing.T) {
	s, err := New(fullResult()).JSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &decoded))

	assert.Len(t, decoded, 4)
	for _, leaked := range []string{"basis", "charge", "spin", "atom_count", "elapsed_seconds", "tiempo_segundos"} {
		assert.NotContains(t, decoded, leaked)
	}
}

func TestJSONUsesTwoSpaceIndent(t *testing.T) {
	s, err := New(fullResult()).JSON()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s, "{\n  \"energia\""), "got %q", s)
	assert.False(t, strings.HasSuffix(s, "\n"), "serialized report should not end with a newline")
}

func TestWriteFileMatchesSerialization(t *testing.T) {
	report := New(fullResult())
	path := filepath.Join(t.TempDir(), "result.json")

	require.NoError(t, report.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := report.JSON()
	require.NoError(t, err)
	assert.Equal(t, want, string(data))
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, New(fullResult()).WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(data))
}

func TestFormatValid(t *testing.T) {
	assert.True(t, FormatJSON.Valid())
	assert.True(t, FormatDict.Valid())
	assert.False(t, Format("yaml").Valid())
	assert.False(t, Format("").Valid())
}
