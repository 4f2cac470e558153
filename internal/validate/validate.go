// Package validate holds the input validators applied at the CLI
// boundary before any filesystem mutation happens.
package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/loom-cli/loom/internal/config"
)

// Error is a rejected-input error. Field names which input was bad so
// the prompt loop can re-solicit just that value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Name checks a project name. Checks run in order and stop at the
// first failure, each with its own reason: the name must be non-empty,
// lowercase, limited to letters, digits and hyphens, start with a
// letter, and not start or end with a hyphen.
func Name(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return &Error{Field: "name", Reason: "project name cannot be empty"}
	}
	if strings.ToLower(name) != name {
		return &Error{Field: "name", Reason: "project name must be lowercase"}
	}
	for _, r := range name {
		if !isNameRune(r) {
			return &Error{Field: "name", Reason: "project name may only contain lowercase letters, digits, and hyphens"}
		}
	}
	if first := name[0]; first < 'a' || first > 'z' {
		return &Error{Field: "name", Reason: "project name must start with a lowercase letter"}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return &Error{Field: "name", Reason: "project name cannot start or end with a hyphen"}
	}

	return nil
}

func isNameRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}

// ProjectType parses a project type argument. Accepted spellings are
// nextjs/frontend, nodejs/backend, and both. Anything else is rejected
// so the caller can re-solicit; unknown strings are never defaulted.
func ProjectType(s string) (config.Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nextjs", "frontend":
		return config.Frontend, nil
	case "nodejs", "backend":
		return config.Backend, nil
	case "both":
		return config.Both, nil
	default:
		return 0, &Error{
			Field:  "type",
			Reason: fmt.Sprintf("unknown project type %q: expected frontend, backend, or both", s),
		}
	}
}

// BasePath checks that the parent directory new projects are created
// under exists, and returns it as an absolute path.
func BasePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", &Error{Field: "path", Reason: "base path cannot be empty"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &Error{Field: "path", Reason: fmt.Sprintf("cannot resolve base path %q", path)}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &Error{Field: "path", Reason: fmt.Sprintf("base path %s does not exist", abs)}
		}
		return "", fmt.Errorf("checking base path: %w", err)
	}
	if !info.IsDir() {
		return "", &Error{Field: "path", Reason: fmt.Sprintf("base path %s is not a directory", abs)}
	}

	return abs, nil
}
