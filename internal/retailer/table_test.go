package retailer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Valid(t *testing.T) {
	table := Default()
	require.NoError(t, table.Validate())
	assert.Equal(t, "Lenovo US", table.Names()[0])
	assert.Equal(t, "Roots", table.Names()[len(table.Entries)-1])
}

func TestTable_Schedule(t *testing.T) {
	table := Default()
	assert.Equal(t, "Weekly/Biweekly", table.Schedule("Madewell"))
	assert.Equal(t, DefaultSchedule, table.Schedule("Roots"))
	assert.Equal(t, DefaultSchedule, table.Schedule("Nobody"))
}

func TestTable_Contains(t *testing.T) {
	table := Default()
	assert.True(t, table.Contains("Alex & Ani"))
	assert.False(t, table.Contains("Unknown"))
}

func TestParse_PreservesOrder(t *testing.T) {
	data := []byte(`
retailers:
  - name: Zeta
    keywords: [zeta]
  - name: Alpha
    keywords: [alpha, "alpha co"]
    schedule: Weekly
`)
	table, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Alpha"}, table.Names())
	assert.Equal(t, "Weekly", table.Schedule("Alpha"))
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"empty":      "retailers: []",
		"no name":    "retailers:\n  - keywords: [x]",
		"no keyword": "retailers:\n  - name: X",
		"duplicate":  "retailers:\n  - name: X\n    keywords: [x]\n  - name: X\n    keywords: [y]",
		"bad yaml":   "retailers: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	table, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), table)

	path := filepath.Join(t.TempDir(), "retailers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retailers:\n  - name: Solo\n    keywords: [solo]\n"), 0o600))
	table, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Solo"}, table.Names())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
