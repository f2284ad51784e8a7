package baseline_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melodic-software/medley/internal/adapters/outbound/baseline"
)

func TestStore_LoadMissing(t *testing.T) {
	dir := t.TempDir()
	s := baseline.New()

	set, err := s.Load(dir)
	require.NoError(t, err)
	assert.Nil(t, set)
}

func TestStore_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	s := baseline.New()

	fingerprints := []string{
		"MDY001|internal/orders/domain/store.go|OrderStore",
		"MDY010|internal/billing/domain/invoice.go|Invoice",
	}
	require.NoError(t, s.Save(dir, fingerprints))

	set, err := s.Load(dir)
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.True(t, set["MDY001|internal/orders/domain/store.go|OrderStore"])
	assert.True(t, set["MDY010|internal/billing/domain/invoice.go|Invoice"])
}

func TestStore_SaveSortsFingerprints(t *testing.T) {
	dir := t.TempDir()
	s := baseline.New()

	require.NoError(t, s.Save(dir, []string{"zzz", "aaa", "mmm"}))

	data, err := os.ReadFile(filepath.Join(dir, ".medley", "baseline.json"))
	require.NoError(t, err)

	var stored []string
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, []string{"aaa", "mmm", "zzz"}, stored)
}

func TestStore_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := baseline.New()

	require.NoError(t, s.Save(dir, []string{"old"}))
	require.NoError(t, s.Save(dir, []string{"new"}))

	set, err := s.Load(dir)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.True(t, set["new"])
	assert.False(t, set["old"])
}
