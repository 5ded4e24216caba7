// Package settings resolves user-facing CLI settings by cascading
// lookups across project, workspace, and global configuration scopes.
// Package-manager choice and warning flags use override semantics (the
// narrowest scope that defines a value wins); schematic defaults
// accumulate across scopes with narrower keys overriding wider ones.
package settings

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/oscarlic/angular-cli/internal/workspace"
)

// packageManagerPath is the extension key carrying the package manager
// choice at every scope.
const packageManagerPath = "cli.packageManager"

// Resolver answers settings lookups backed by a workspace.Store.
type Resolver struct {
	store *workspace.Store
}

// NewResolver returns a Resolver reading through store.
func NewResolver(store *workspace.Store) *Resolver {
	return &Resolver{store: store}
}

// PackageManager returns the configured package manager, applying
// override semantics from project to workspace to global scope. When
// neither a local nor a global document exists at all, the legacy
// global file is consulted. Returns "" when nothing is configured.
func (r *Resolver) PackageManager() (string, error) {
	local, err := r.store.Workspace(workspace.Local)
	if err != nil {
		return "", err
	}
	if local != nil {
		if name := workspace.ProjectForCwd(local); name != "" {
			if pm := stringAt(local.Raw(), projectPath(name, packageManagerPath)); pm != "" {
				return pm, nil
			}
		}
		if pm := stringAt(local.Raw(), packageManagerPath); pm != "" {
			return pm, nil
		}
	}

	global, err := r.store.Workspace(workspace.Global)
	if err != nil {
		return "", err
	}
	if global != nil {
		if pm := stringAt(global.Raw(), packageManagerPath); pm != "" {
			return pm, nil
		}
	}
	if local == nil && global == nil {
		return workspace.LegacyPackageManager(), nil
	}
	return "", nil
}

// SchematicDefaults merges default options for a schematic across all
// scopes. Scopes apply global first, then workspace, then project, so a
// narrower scope wins on key collisions; within a scope the qualified
// "collection:schematic" entry applies before the nested
// schematics[collection][schematic] entry. An empty project name selects
// the working directory's project. The result is never nil.
func (r *Resolver) SchematicDefaults(collection, schematic, project string) (map[string]any, error) {
	result := map[string]any{}
	qualified := escapeKey(collection + ":" + schematic)
	nested := escapeKey(collection) + "." + escapeKey(schematic)
	merge := func(doc []byte, prefix string) {
		mergeOptions(result, doc, prefix+"."+qualified)
		mergeOptions(result, doc, prefix+"."+nested)
	}

	global, err := r.store.Workspace(workspace.Global)
	if err != nil {
		return nil, err
	}
	if global != nil {
		merge(global.Raw(), "schematics")
	}

	local, err := r.store.Workspace(workspace.Local)
	if err != nil {
		return nil, err
	}
	if local != nil {
		merge(local.Raw(), "schematics")
		if project == "" {
			project = workspace.ProjectForCwd(local)
		}
		if project != "" {
			merge(local.Raw(), projectPath(project, "schematics"))
		}
	}
	return result, nil
}

// IsWarningEnabled reports whether the named CLI warning should be
// shown, applying override semantics from project to workspace to
// global scope. Warnings default to enabled when no scope defines them.
func (r *Resolver) IsWarningEnabled(name string) (bool, error) {
	path := "cli.warnings." + escapeKey(name)

	local, err := r.store.Workspace(workspace.Local)
	if err != nil {
		return true, err
	}
	if local != nil {
		if project := workspace.ProjectForCwd(local); project != "" {
			if enabled, ok := boolAt(local.Raw(), projectPath(project, path)); ok {
				return enabled, nil
			}
		}
		if enabled, ok := boolAt(local.Raw(), path); ok {
			return enabled, nil
		}
	}

	global, err := r.store.Workspace(workspace.Global)
	if err != nil {
		return true, err
	}
	if global != nil {
		if enabled, ok := boolAt(global.Raw(), path); ok {
			return enabled, nil
		}
	}
	return true, nil
}

// projectPath builds the lookup path for a key under a named project.
func projectPath(name, rest string) string {
	return "projects." + escapeKey(name) + "." + rest
}

// escapeKey escapes gjson path metacharacters in a single object key.
// Collection names like "@schematics/angular" would otherwise be read
// as gjson modifiers.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// stringAt reads the string at path, "" when absent or not a string.
func stringAt(doc []byte, path string) string {
	res := gjson.GetBytes(doc, path)
	if res.Type == gjson.String {
		return res.Str
	}
	return ""
}

// boolAt reads the boolean at path; the second result reports whether a
// boolean was present. Non-boolean values are ignored.
func boolAt(doc []byte, path string) (bool, bool) {
	switch gjson.GetBytes(doc, path).Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	}
	return false, false
}

// mergeOptions shallow-merges the object at path into dst. Non-object
// values are ignored.
func mergeOptions(dst map[string]any, doc []byte, path string) {
	res := gjson.GetBytes(doc, path)
	if !res.IsObject() {
		return
	}
	obj, ok := res.Value().(map[string]any)
	if !ok {
		return
	}
	for key, value := range obj {
		dst[key] = value
	}
}
