package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// PathFilter applies the files section: extensions to include and glob
// patterns to exclude. Patterns use "/" as separator, "*" stays within one
// segment and "**" spans segments. A pattern not starting with "**/" also
// matches at any depth, as in .gitignore.
type PathFilter struct {
	include []string
	exclude []glob.Glob
}

// Filter compiles the exclude patterns.
func (f FilesConfig) Filter() (*PathFilter, error) {
	pf := &PathFilter{include: make([]string, 0, len(f.Include))}
	for _, ext := range f.Include {
		pf.include = append(pf.include, strings.ToLower(ext))
	}

	for _, pattern := range f.Exclude {
		variants := []string{pattern}
		if !strings.HasPrefix(pattern, "**/") && !strings.HasPrefix(pattern, "/") {
			variants = append(variants, "**/"+pattern)
		}
		for _, v := range variants {
			g, err := glob.Compile(strings.TrimPrefix(v, "/"), '/')
			if err != nil {
				return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
			}
			pf.exclude = append(pf.exclude, g)
		}
	}
	return pf, nil
}

// Included reports whether path has one of the included extensions.
func (p *PathFilter) Included(path string) bool {
	return slices.Contains(p.include, strings.ToLower(filepath.Ext(path)))
}

// Excluded matches a path relative to the analyzed root. Directories also
// match patterns ending in "/**".
func (p *PathFilter) Excluded(rel string, dir bool) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range p.exclude {
		if g.Match(rel) || (dir && g.Match(rel+"/")) {
			return true
		}
	}
	return false
}
