package report

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher checks report file paths, relative to the report root, against glob patterns
type Matcher interface {
	Match(path string) bool
}

type matcher struct {
	patterns []glob.Glob
}

// NewMatcher compiles patterns; '**' crosses directories and '*' does not
func NewMatcher(patterns []string) (Matcher, error) {
	m := &matcher{patterns: make([]glob.Glob, 0, len(patterns))}

	for _, p := range expandPatterns(patterns) {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, err
		}

		m.patterns = append(m.patterns, g)
	}

	return m, nil
}

// expandPatterns lets a leading **/ also match files directly under the root
func expandPatterns(patterns []string) []string {
	expanded := make([]string, 0, len(patterns)*2)

	for _, p := range patterns {
		p = normalizePath(p)
		expanded = append(expanded, p)

		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			expanded = append(expanded, rest)
		}
	}

	return expanded
}

func (m *matcher) Match(path string) bool {
	path = normalizePath(path)

	for _, pattern := range m.patterns {
		if pattern.Match(path) {
			return true
		}
	}

	return false
}

// SplitPattern separates the literal directory prefix of a pattern from its glob part
func SplitPattern(pattern string) (root, rel string) {
	segments := strings.Split(normalizePath(pattern), "/")

	for i, seg := range segments {
		if strings.ContainsAny(seg, "*?[{") {
			root = strings.Join(segments[:i], "/")
			if root == "" && strings.HasPrefix(pattern, "/") {
				root = "/"
			}

			if root == "" {
				root = "."
			}

			return filepath.FromSlash(root), strings.Join(segments[i:], "/")
		}
	}

	// a plain file path
	return filepath.Dir(pattern), filepath.Base(pattern)
}

// Find walks root and returns the sorted paths of the files m accepts
func Find(root string, m Matcher) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if m.Match(rel) {
			files = append(files, path)
		}

		return nil
	})

	slices.Sort(files)

	return files, err
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	return path
}

func shouldSkipDir(name string) bool {
	return slices.Contains([]string{".git", "node_modules", "vendor", ".idea", ".vscode"}, name)
}
