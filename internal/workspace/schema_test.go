package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromJSON(t *testing.T, content string) *Document {
	t.Helper()
	doc, err := newDocument("/workspace/angular.json", []byte(content))
	require.NoError(t, err)
	return doc
}

func TestValidateWorkspace(t *testing.T) {
	t.Run("minimal document is valid", func(t *testing.T) {
		doc := docFromJSON(t, `{"version": 1}`)
		assert.NoError(t, ValidateWorkspace(doc))
	})

	t.Run("full document is valid", func(t *testing.T) {
		doc := docFromJSON(t, `{
			"version": 1,
			"defaultProject": "app",
			"cli": {"packageManager": "yarn", "warnings": {"versionMismatch": false}},
			"schematics": {"@schematics/angular:component": {"style": "scss"}},
			"projects": {
				"app": {"root": "app", "prefix": "app"}
			}
		}`)
		assert.NoError(t, ValidateWorkspace(doc))
	})

	tests := map[string]struct {
		content      string
		instancePath string
	}{
		"missing version": {
			content:      `{"cli": {}}`,
			instancePath: "",
		},
		"unknown package manager": {
			content:      `{"version": 1, "cli": {"packageManager": "maven"}}`,
			instancePath: "/cli/packageManager",
		},
		"non-boolean warning": {
			content:      `{"version": 1, "cli": {"warnings": {"versionMismatch": "no"}}}`,
			instancePath: "/cli/warnings/versionMismatch",
		},
		"project missing root": {
			content:      `{"version": 1, "projects": {"app": {"prefix": "app"}}}`,
			instancePath: "/projects/app",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := docFromJSON(t, tt.content)
			err := ValidateWorkspace(doc)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, doc.Path, verr.Path)
			require.NotEmpty(t, verr.Violations)

			found := false
			for _, v := range verr.Violations {
				if v.InstancePath == tt.instancePath {
					found = true
				}
			}
			assert.True(t, found, "expected violation at %q, got %v", tt.instancePath, verr.Violations)
		})
	}
}
