package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Describe identifies what occupies a path so conflict messages and
// overwrite prompts can say what would be destroyed: a Node project,
// a Go module, a plain directory, or a file.
func Describe(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "an existing path"
	}
	if !info.IsDir() {
		return "an existing file"
	}

	if name, err := nodePackageName(path); err == nil && name != "" {
		return fmt.Sprintf("an existing Node project (%s)", name)
	}
	if mod, err := goModulePath(path); err == nil && mod != "" {
		return fmt.Sprintf("an existing Go module (%s)", mod)
	}

	entries, err := os.ReadDir(path)
	if err == nil && len(entries) == 0 {
		return "an existing empty directory"
	}
	return "an existing directory"
}

// nodePackageName reads the name field from a package.json, if any.
func nodePackageName(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return "", err
	}

	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", err
	}
	return pkg.Name, nil
}

// goModulePath reads the module path from a go.mod, if any.
func goModulePath(dir string) (string, error) {
	modPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(modPath)
	if err != nil {
		return "", err
	}

	f, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return "", err
	}
	return f.Module.Mod.Path, nil
}
