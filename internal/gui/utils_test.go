package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMappings(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		want    map[string]string
		wantErr string
	}{
		{
			name: "json",
			file: "mappings.json",
			data: `{"*.conf": "yaml", ".tmpl": "html"}`,
			want: map[string]string{"*.conf": "yaml", ".tmpl": "html"},
		},
		{
			name: "yaml",
			file: "mappings.YML",
			data: "'*.conf': yaml\nMakefile: plaintext\n",
			want: map[string]string{"*.conf": "yaml", "Makefile": "plaintext"},
		},
		{
			name:    "unsupported extension",
			file:    "mappings.toml",
			data:    "",
			wantErr: "unsupported file format: .toml",
		},
		{
			name:    "unknown language",
			file:    "m.json",
			data:    `{"*.x": "cobol"}`,
			wantErr: `unknown language "cobol"`,
		},
		{
			name:    "empty pattern",
			file:    "m.json",
			data:    `{" ": "yaml"}`,
			wantErr: "empty pattern",
		},
		{
			name:    "bad json",
			file:    "m.json",
			data:    `{`,
			wantErr: "error parsing JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMappings(tt.file, []byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportMappings(t *testing.T) {
	m := map[string]string{"*.conf": "yaml"}

	data, err := exportMappings(m, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"*.conf":"yaml"}`, string(data))

	data, err = exportMappings(m, "YAML")
	require.NoError(t, err)
	back, err := parseMappings("back.yaml", data)
	require.NoError(t, err)
	assert.Equal(t, m, back)

	_, err = exportMappings(m, "xml")
	assert.Error(t, err)
}

func TestMappingRows(t *testing.T) {
	rows := mappingRows(map[string]string{".tmpl": "html", "*.conf": "yaml"})
	assert.Equal(t, []string{"*.conf → YAML", ".tmpl → HTML"}, rows)
	assert.Empty(t, mappingRows(nil))
}

func TestClampFontSize(t *testing.T) {
	assert.Equal(t, float32(minFontSize), clampFontSize(2))
	assert.Equal(t, float32(14), clampFontSize(14))
	assert.Equal(t, float32(maxFontSize), clampFontSize(100))
}

func TestLanguageOptions(t *testing.T) {
	opts := languageOptions()
	assert.Contains(t, opts, "plaintext")
	assert.Contains(t, opts, "csharp")
	assert.IsIncreasing(t, opts)
}
