// Package discovery enumerates the documentation files under a root.
//
// Primary files are everything ending in .txt. Translated files carry a
// suffix of a dot, a two-letter lowercase language code and one trailing
// character (help.nlx, help.dez); they are grouped per language code and
// indexed separately. Hidden directories are skipped.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doctags/doctags-mcp/pkg/types"
)

// primarySuffix marks the primary documentation set.
const primarySuffix = ".txt"

// Discover walks root recursively and partitions its documentation files
// into the primary set and the per-language translated groups. Order
// within each group is walk order.
func Discover(root string) (*types.DocumentSet, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat documentation root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("documentation root %s is not a directory", root)
	}

	set := &types.DocumentSet{
		Root:       root,
		Translated: make(map[string][]string),
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		name := info.Name()
		if strings.HasSuffix(name, primarySuffix) {
			set.Primary = append(set.Primary, path)
			return nil
		}
		if lang := TranslatedLang(name); lang != "" {
			set.Translated[lang] = append(set.Translated[lang], path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk documentation root: %w", err)
	}

	return set, nil
}

// TranslatedLang returns the two-letter language code for file names
// ending in a dot, two lowercase letters and one more character, or ""
// when the name does not match. The literal .txt suffix belongs to the
// primary set and never counts as a translation.
func TranslatedLang(name string) string {
	if len(name) < len(".abc")+1 {
		return ""
	}
	suffix := name[len(name)-4:]
	if suffix[0] != '.' || suffix == primarySuffix {
		return ""
	}
	if !isLower(suffix[1]) || !isLower(suffix[2]) {
		return ""
	}
	return suffix[1:3]
}

// IsDocFile reports whether a file name belongs to either documentation
// set. Used by watch mode to filter filesystem events.
func IsDocFile(name string) bool {
	return strings.HasSuffix(name, primarySuffix) || TranslatedLang(name) != ""
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
