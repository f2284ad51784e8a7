package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesCommand_Table(t *testing.T) {
	out, err := runCommand(t, "rules")
	require.NoError(t, err)

	for _, id := range []string{"MDY001", "MDY002", "MDY003", "MDY004", "MDY005", "MDY006", "MDY007", "MDY010"} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, "Repository")
	assert.Contains(t, out, "boundaries")
}

func TestRulesCommand_JSON(t *testing.T) {
	out, err := runCommand(t, "rules", "--json")
	require.NoError(t, err)

	var infos []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
		Severity string `json:"severity"`
		Suffix   string `json:"suffix"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 8)

	assert.Equal(t, "MDY001", infos[0].ID)
	assert.Equal(t, "Repository", infos[0].Suffix)
	assert.Equal(t, "MDY010", infos[7].ID)
	assert.Equal(t, "boundaries", infos[7].Category)
	assert.Empty(t, infos[7].Suffix)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "medley dev (none)")
}
