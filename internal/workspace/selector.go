package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectByPath returns the name of the project whose root contains
// target. When several project roots contain it, the project with the
// longest root path wins. A tie between distinct projects at the same
// depth, duplicate identical roots included, is ambiguous and selects
// nothing. Returns "" when no project matches.
func ProjectByPath(doc *Document, target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return ""
	}

	base := doc.Base()
	best := ""
	bestLen := -1
	ambiguous := false
	for name, project := range doc.Projects {
		root := filepath.Join(base, project.Root)
		if !containsPath(root, abs) {
			continue
		}
		switch l := len(project.Root); {
		case l > bestLen:
			best, bestLen, ambiguous = name, l, false
		case l == bestLen:
			ambiguous = true
		}
	}
	if ambiguous {
		return ""
	}
	return best
}

// containsPath reports whether target is root itself or nested below
// it, after resolving any ".." segments.
func containsPath(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

// ProjectForCwd picks the project the working directory belongs to. A
// workspace with exactly one project always selects it, with no path
// check. Otherwise the working directory is matched against project
// roots, falling back to the defaultProject extension when set to a
// string. Returns "" when nothing applies.
func ProjectForCwd(doc *Document) string {
	if len(doc.Projects) == 1 {
		for name := range doc.Projects {
			return name
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		if name := ProjectByPath(doc, cwd); name != "" {
			return name
		}
	}
	if name, ok := doc.Extensions["defaultProject"].(string); ok {
		return name
	}
	return ""
}
