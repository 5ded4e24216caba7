// Package workspace locates, loads, and caches the CLI's configuration
// documents. A project-level file (angular.json or .angular.json) is
// discovered by walking up the directory tree, and a user-level file
// (.angular-config.json) is resolved following the XDG convention with a
// home-directory fallback. Both are parsed as relaxed JSON: comments and
// trailing commas are tolerated.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/oscarlic/angular-cli/internal/jsonutil"
)

const (
	// Project-level file names, checked in order at each directory
	// level during the upward search.
	configFileName    = "angular.json"
	altConfigFileName = ".angular.json"

	// globalFileName is the user-level configuration file name.
	globalFileName = ".angular-config.json"

	// legacyFileName is the pre-6.0 global configuration file name.
	legacyFileName = ".angular-cli.json"

	// xdgAppDir is the subdirectory used under the XDG config home.
	xdgAppDir = "angular"
)

// Document is the typed view of a loaded configuration file. Documents
// are immutable after load.
type Document struct {
	// Path is the absolute location the document was loaded from.
	Path string
	// Extensions holds every top-level key except "projects".
	Extensions map[string]any
	// Projects maps project names to their definitions.
	Projects map[string]Project

	raw []byte
}

// Project is a single project declared in a workspace document.
type Project struct {
	// Root is the project root directory, relative to the directory
	// containing the workspace document.
	Root string
	// Extensions holds every project key except "root".
	Extensions map[string]any
}

// Base returns the directory containing the document's file. Project
// roots are resolved against it.
func (d *Document) Base() string {
	return filepath.Dir(d.Path)
}

// Raw returns the document content normalized to strict JSON, suitable
// for path lookups. The returned slice must not be modified.
func (d *Document) Raw() []byte {
	return d.raw
}

func newDocument(path string, data []byte) (*Document, error) {
	raw := jsonutil.Normalize(data)
	obj, err := jsonutil.ParseObject(raw)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	doc := &Document{
		Path:       path,
		Extensions: make(map[string]any),
		Projects:   make(map[string]Project),
		raw:        raw,
	}
	for key, value := range obj {
		if key != "projects" {
			doc.Extensions[key] = value
		}
	}

	projectsVal, ok := obj["projects"]
	if !ok {
		return doc, nil
	}
	projects, ok := projectsVal.(map[string]any)
	if !ok {
		return nil, &LoadError{Path: path, Err: errors.New(`"projects" must be a JSON object`)}
	}
	for name, value := range projects {
		entry, ok := value.(map[string]any)
		if !ok {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("project %q must be a JSON object", name)}
		}
		project := Project{Extensions: make(map[string]any)}
		for key, v := range entry {
			if key == "root" {
				if root, ok := v.(string); ok {
					project.Root = root
				}
				continue
			}
			project.Extensions[key] = v
		}
		doc.Projects[name] = project
	}
	return doc, nil
}
