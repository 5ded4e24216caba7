package workspace

import (
	"encoding/json"
	"os"
	"path/filepath"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/tidwall/pretty"
)

// legacyDefaultSentinel marked "use the built-in default" in the legacy
// format and is never carried over.
const legacyDefaultSentinel = "default"

// loadLegacyConfig reads the deprecated .angular-cli.json from the home
// directory. Legacy content is best effort: a missing, unreadable, or
// malformed file yields (nil, false).
func loadLegacyConfig() (*koanf.Koanf, bool) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, false
	}
	path := filepath.Join(home, legacyFileName)
	if !fileExists(path) {
		return nil, false
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kjson.Parser()); err != nil {
		return nil, false
	}
	return k, true
}

// MigrateLegacyGlobalConfig converts the deprecated global configuration
// file into the current format, writing a new .angular-config.json in
// the home directory. It returns true only when a new file was written:
// legacy files that are absent, unparsable, or carry no usable settings
// migrate nothing.
func MigrateLegacyGlobalConfig() (bool, error) {
	k, ok := loadLegacyConfig()
	if !ok {
		return false, nil
	}

	cli := map[string]any{}
	if pm, ok := k.Get("packageManager").(string); ok && pm != "" && pm != legacyDefaultSentinel {
		cli["packageManager"] = pm
	}
	if collection, ok := k.Get("defaults.schematics.collection").(string); ok {
		cli["defaultCollection"] = collection
	}
	if mismatch, ok := k.Get("warnings.versionMismatch").(bool); ok {
		cli["warnings"] = map[string]any{"versionMismatch": mismatch}
	}
	if len(cli) == 0 {
		return false, nil
	}

	path, err := defaultGlobalPath()
	if err != nil {
		return false, err
	}
	data, err := json.Marshal(map[string]any{"version": 1, "cli": cli})
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, pretty.Pretty(data), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// LegacyPackageManager returns the package manager recorded in the
// legacy global configuration file, or "" when none applies. Used as a
// last-resort fallback when no modern configuration exists at all.
func LegacyPackageManager() string {
	k, ok := loadLegacyConfig()
	if !ok {
		return ""
	}
	pm, ok := k.Get("packageManager").(string)
	if !ok || pm == legacyDefaultSentinel {
		return ""
	}
	return pm
}
