package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlDoc = `
facts:
  - entity: Coffee
    attribute: origin
    value: Ethiopia
    category: ROOT
    topic: beans
  - entity: Coffee
    attribute: caffeine
    value: 95
`

const yamlList = `
- entity: Tea
  attribute: origin
  value: China
  group: g1
`

const jsonDoc = `{"facts": [{"entity": "Coffee", "attribute": "origin", "value": "Ethiopia", "section": "shop"}]}`

const jsonList = `[{"entity": "Tea", "attribute": "origin", "value": "China"}]`

const csvDoc = `Subject, Attribute, Value, Category, Notes
Coffee, origin, Ethiopia, ROOT, ignored
Tea, origin, "China, Yunnan", RARE
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   []Fact
	}{
		{"yaml document", FormatYAML, yamlDoc, []Fact{
			{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Category: "ROOT", Topic: "beans"},
			{Entity: "Coffee", Attribute: "caffeine", Value: "95"},
		}},
		{"yaml list", FormatYAML, yamlList, []Fact{
			{Entity: "Tea", Attribute: "origin", Value: "China", Group: "g1"},
		}},
		{"json document", FormatJSON, jsonDoc, []Fact{
			{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Section: "shop"},
		}},
		{"json list", FormatJSON, jsonList, []Fact{
			{Entity: "Tea", Attribute: "origin", Value: "China"},
		}},
		{"csv", FormatCSV, csvDoc, []Fact{
			{Entity: "Coffee", Attribute: "origin", Value: "Ethiopia", Category: "ROOT"},
			{Entity: "Tea", Attribute: "origin", Value: "China, Yunnan", Category: "RARE"},
		}},
		{"empty yaml", FormatYAML, "", nil},
		{"empty json", FormatJSON, "  ", nil},
		{"empty csv", FormatCSV, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader(`[{"entity": "Tea"}]`), FormatJSON)
	assert.ErrorIs(t, err, ErrInvalidFact)

	_, err = Decode(strings.NewReader("entity,attribute\n,origin\n"), FormatCSV)
	assert.ErrorIs(t, err, ErrInvalidFact)

	_, err = Decode(strings.NewReader("{not json"), FormatJSON)
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("x"), Format("xml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"facts.yaml": FormatYAML,
		"facts.YML":  FormatYAML,
		"facts.json": FormatJSON,
		"a/b/c.csv":  FormatCSV,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("facts.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o644))

	facts, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, facts, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
