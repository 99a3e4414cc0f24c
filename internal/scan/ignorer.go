package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/hexcount-dev/hexcount/internal/config"
)

// IgnoreFileName is the project-specific ignore file, read after .gitignore.
const IgnoreFileName = ".hexcountignore"

// rule is one gitignore-style pattern.
type rule struct {
	glob     string
	negation bool
	dirOnly  bool
	floating bool // matches at any depth
}

func parseRule(p string) (rule, bool) {
	p = strings.TrimSpace(p)
	if p == "" || strings.HasPrefix(p, "#") {
		return rule{}, false
	}

	var r rule
	if strings.HasPrefix(p, "!") {
		r.negation = true
		p = p[1:]
	}
	if strings.HasSuffix(p, "/**") {
		r.dirOnly = true
		p = strings.TrimSuffix(p, "/**")
	}
	if strings.HasSuffix(p, "/") {
		r.dirOnly = true
		p = strings.TrimSuffix(p, "/")
	}
	switch {
	case strings.HasPrefix(p, "**/"):
		r.floating = true
		p = strings.TrimPrefix(p, "**/")
	case strings.HasPrefix(p, "/"):
		p = strings.TrimPrefix(p, "/")
	case !strings.Contains(p, "/"):
		r.floating = true
	}

	r.glob = p
	return r, p != ""
}

// match checks rel, a slash-separated path relative to the scan root.
func (r rule) match(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	if !r.floating {
		ok, _ := filepath.Match(r.glob, rel)
		return ok
	}

	parts := strings.Split(rel, "/")
	for i := range parts {
		if ok, _ := filepath.Match(r.glob, strings.Join(parts[i:], "/")); ok {
			return true
		}
	}
	return false
}

// patternList applies rules in order; the last matching rule wins.
type patternList []rule

func newPatternList(patterns []string) patternList {
	var list patternList
	for _, p := range patterns {
		if r, ok := parseRule(p); ok {
			list = append(list, r)
		}
	}
	return list
}

func (l patternList) match(rel string, isDir bool) bool {
	matched := false
	for _, r := range l {
		if r.match(rel, isDir) {
			matched = !r.negation
		}
	}
	return matched
}

// Ignorer decides which paths a directory scan skips and which files it reads.
type Ignorer struct {
	include patternList
	exclude patternList
}

// NewIgnorer builds an ignorer for root from the scan configuration plus the
// .gitignore and .hexcountignore files found in root.
func NewIgnorer(root string, cfg config.ScanConfig) (*Ignorer, error) {
	exclude := []string{config.HexcountDir + "/"}

	for _, name := range []string{".gitignore", IgnoreFileName} {
		lines, err := readPatternFile(filepath.Join(root, name))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		exclude = append(exclude, lines...)
	}

	// Config patterns have the highest priority
	exclude = append(exclude, cfg.ExcludePatterns...)

	return &Ignorer{
		include: newPatternList(cfg.IncludePatterns),
		exclude: newPatternList(exclude),
	}, nil
}

func readPatternFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// ShouldIgnore reports whether rel is excluded. Directories that are ignored
// are not descended into.
func (i *Ignorer) ShouldIgnore(rel string, isDir bool) bool {
	return i.exclude.match(filepath.ToSlash(rel), isDir)
}

// ShouldScan reports whether the file rel is included and not excluded.
func (i *Ignorer) ShouldScan(rel string) bool {
	rel = filepath.ToSlash(rel)
	return i.include.match(rel, false) && !i.exclude.match(rel, false)
}
