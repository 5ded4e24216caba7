package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	return home
}

func TestStoreWorkspaceLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "angular.json"), `{
		// workspace for the app
		"version": 1,
		"cli": {"packageManager": "yarn"},
		"projects": {
			"app": {"root": "app", "prefix": "app", "cli": {"packageManager": "pnpm"}},
		},
	}`)

	store := NewStore()
	store.StartDir = dir
	doc, err := store.Workspace(Local)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, filepath.Join(dir, "angular.json"), doc.Path)
	assert.Equal(t, dir, doc.Base())
	assert.Equal(t, float64(1), doc.Extensions["version"])
	assert.NotContains(t, doc.Extensions, "projects")

	project, ok := doc.Projects["app"]
	require.True(t, ok)
	assert.Equal(t, "app", project.Root)
	assert.Equal(t, "app", project.Extensions["prefix"])
	assert.NotContains(t, project.Extensions, "root")
}

func TestStoreWorkspaceStripsBOM(t *testing.T) {
	dir := t.TempDir()
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"version": 1}`)...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "angular.json"), content, 0o644))

	store := NewStore()
	store.StartDir = dir
	doc, err := store.Workspace(Local)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, float64(1), doc.Extensions["version"])
}

func TestStoreWorkspaceNotFound(t *testing.T) {
	setTestHome(t)
	store := NewStore()
	store.StartDir = t.TempDir()

	doc, err := store.Workspace(Local)
	require.NoError(t, err)
	assert.Nil(t, doc)

	doc, err = store.Workspace(Global)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStoreCachesAbsence(t *testing.T) {
	dir := t.TempDir()
	store := NewStore()
	store.StartDir = dir

	doc, err := store.Workspace(Local)
	require.NoError(t, err)
	require.Nil(t, doc)

	// A file appearing later must not be picked up within the same
	// store lifetime.
	writeFile(t, filepath.Join(dir, "angular.json"), `{"version": 1}`)
	doc, err = store.Workspace(Local)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestStoreCachesDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "angular.json"), `{"version": 1}`)

	store := NewStore()
	store.StartDir = dir
	first, err := store.Workspace(Local)
	require.NoError(t, err)

	writeFile(t, filepath.Join(dir, "angular.json"), `{"version": 2}`)
	second, err := store.Workspace(Local)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestStoreWorkspaceLoadErrors(t *testing.T) {
	tests := map[string]string{
		"malformed json":   `{"version": `,
		"top-level array":  `[1, 2, 3]`,
		"top-level string": `"hello"`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "angular.json"), content)

			store := NewStore()
			store.StartDir = dir
			doc, err := store.Workspace(Local)
			assert.Nil(t, doc)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, filepath.Join(dir, "angular.json"), loadErr.Path)
		})
	}
}

func TestStoreWorkspaceGlobal(t *testing.T) {
	home := setTestHome(t)
	writeFile(t, filepath.Join(home, ".angular-config.json"), `{"version": 1, "cli": {"packageManager": "npm"}}`)

	store := NewStore()
	doc, err := store.Workspace(Global)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, filepath.Join(home, ".angular-config.json"), doc.Path)
}

func TestCreateGlobalSettingsRoundTrip(t *testing.T) {
	home := setTestHome(t)

	store := NewStore()
	path, err := store.CreateGlobalSettings()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".angular-config.json"), path)

	raw, err := store.WorkspaceRaw(Global)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, int64(1), raw.Get("version").Int())
}

func TestWorkspaceRawGlobalCreatesMissingFile(t *testing.T) {
	home := setTestHome(t)

	store := NewStore()
	raw, err := store.WorkspaceRaw(Global)
	require.NoError(t, err)
	require.NotNil(t, raw)
	assert.Equal(t, filepath.Join(home, ".angular-config.json"), raw.Path)
	assert.Equal(t, int64(1), raw.Get("version").Int())
	assert.FileExists(t, filepath.Join(home, ".angular-config.json"))
}

func TestWorkspaceRawLocalNotFound(t *testing.T) {
	store := NewStore()
	store.StartDir = t.TempDir()

	raw, err := store.WorkspaceRaw(Local)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestWorkspaceRawRejectsNonObject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "angular.json"), `[1, 2]`)

	store := NewStore()
	store.StartDir = dir
	raw, err := store.WorkspaceRaw(Local)
	assert.Nil(t, raw)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestRawConfigSetAndSave(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "angular.json"), `{"version": 1}`)

	store := NewStore()
	store.StartDir = dir
	raw, err := store.WorkspaceRaw(Local)
	require.NoError(t, err)
	require.NotNil(t, raw)

	require.NoError(t, raw.Set("cli.packageManager", "yarn"))
	require.NoError(t, raw.Save())

	// Re-read through a fresh raw view pinned to the same directory.
	fresh := NewStore()
	fresh.StartDir = dir
	raw2, err := fresh.WorkspaceRaw(Local)
	require.NoError(t, err)
	assert.Equal(t, "yarn", raw2.Get("cli.packageManager").String())
	assert.Equal(t, int64(1), raw2.Get("version").Int())
}
