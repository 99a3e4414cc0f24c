// Package scan finds byte-array literals in source files and counts the hex
// bytes in each one, as if the literal had been selected in an editor.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hexcount-dev/hexcount/internal/config"
	"golang.org/x/sync/errgroup"
)

// Report is the result of scanning a file or a directory tree.
type Report struct {
	Root       string    `json:"root"`
	Files      int       `json:"files"`
	Skipped    int       `json:"skipped"`
	Literals   []Literal `json:"literals"`
	TotalBytes int       `json:"total_bytes"`
}

// Scanner locates literals with tree-sitter and counts them with hexcount.
type Scanner struct {
	parser *Parser
	cfg    config.ScanConfig
	logger *slog.Logger
}

// NewScanner creates a scanner. A nil logger writes to stderr.
func NewScanner(cfg config.ScanConfig, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Scanner{
		parser: NewParser(),
		cfg:    cfg,
		logger: logger,
	}
}

// ScanFile returns the literals in content holding at least scan.min_bytes
// bytes. Files in a language without a parser are treated as one literal.
// Minified content yields nothing.
func (s *Scanner) ScanFile(ctx context.Context, path string, content []byte) ([]Literal, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if len(content) == 0 {
		return nil, nil
	}
	if IsMinified(content, path) {
		s.logger.Debug("skipping minified file", "path", path)
		return nil, nil
	}

	var literals []Literal
	lang := DetectLanguage(path)
	if lang == LangUnknown || !s.parser.IsSupported(lang) {
		literals = []Literal{fileLiteral(path, content)}
	} else {
		tree, err := s.parser.Parse(ctx, lang, content)
		if err != nil {
			return nil, err
		}
		literals = collectLiterals(tree.RootNode(), content, path, lang, nil)
	}

	kept := literals[:0]
	for _, lit := range literals {
		if lit.Bytes >= s.cfg.MinBytes {
			kept = append(kept, lit)
		}
	}

	s.logger.Debug("scanned file", "path", path, "language", lang, "literals", len(kept))
	return kept, nil
}

// ScanPath scans a single file or walks a directory tree.
func (s *Scanner) ScanPath(ctx context.Context, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return s.scanSingle(ctx, root, info)
	}
	return s.ScanDir(ctx, root)
}

func (s *Scanner) scanSingle(ctx context.Context, path string, info fs.FileInfo) (*Report, error) {
	report := &Report{Root: path, Literals: []Literal{}}
	if info.Size() > s.cfg.MaxFileSize {
		report.Skipped = 1
		return report, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	literals, err := s.ScanFile(ctx, filepath.ToSlash(path), content)
	if err != nil {
		return nil, err
	}

	report.Files = 1
	report.add(literals)
	return report, nil
}

// ScanDir walks root, honouring include/exclude patterns and ignore files,
// and scans matching files concurrently.
func (s *Scanner) ScanDir(ctx context.Context, root string) (*Report, error) {
	ignorer, err := NewIgnorer(root, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}

	report := &Report{Root: root, Literals: []Literal{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("failed to access path", "path", path, "error", err)
			return nil
		}
		if gctx.Err() != nil {
			return gctx.Err()
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if ignorer.ShouldIgnore(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !ignorer.ShouldScan(rel) {
			return nil
		}

		g.Go(func() error {
			literals, skipped, err := s.scanEntry(gctx, path, rel, d)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			if skipped {
				report.Skipped++
				return nil
			}
			report.Files++
			report.add(literals)
			return nil
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if walkErr != nil {
		return nil, walkErr
	}

	sort.SliceStable(report.Literals, func(i, j int) bool {
		a, b := report.Literals[i], report.Literals[j]
		if a.File != b.File {
			return a.File < b.File
		}
		return a.StartByte < b.StartByte
	})

	s.logger.Info("scan complete", "root", root, "files", report.Files, "literals", len(report.Literals), "bytes", report.TotalBytes)
	return report, nil
}

// scanEntry reads and scans one file. Unreadable or oversized files are
// reported as skipped rather than failing the whole scan.
func (s *Scanner) scanEntry(ctx context.Context, path, rel string, d fs.DirEntry) ([]Literal, bool, error) {
	info, err := d.Info()
	if err != nil {
		s.logger.Warn("failed to stat file", "path", path, "error", err)
		return nil, true, nil
	}
	if info.Size() > s.cfg.MaxFileSize {
		s.logger.Debug("skipping large file", "path", path, "size", info.Size())
		return nil, true, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("failed to read file", "path", path, "error", err)
		return nil, true, nil
	}

	literals, err := s.ScanFile(ctx, rel, content)
	if err != nil {
		return nil, false, fmt.Errorf("failed to scan %s: %w", rel, err)
	}
	return literals, false, nil
}

func (r *Report) add(literals []Literal) {
	for _, lit := range literals {
		r.Literals = append(r.Literals, lit)
		r.TotalBytes += lit.Bytes
	}
}
