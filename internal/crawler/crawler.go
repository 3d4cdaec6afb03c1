package crawler

import (
	"context"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"modjsx/internal/config"
	"modjsx/internal/extractor"
	"modjsx/internal/parser"
)

// FileReport lists the extractable components found in one source file.
type FileReport struct {
	Path       string
	Components []string
}

// Crawler scans a directory tree for React files with extractable
// components. It never modifies anything; splitting stays a per-file
// operation.
type Crawler struct {
	cfg     *config.Config
	ignored []string
}

// New creates a crawler. The configured components directory is skipped so
// previously split output is not re-reported.
func New(cfg *config.Config) *Crawler {
	return &Crawler{
		cfg:     cfg,
		ignored: []string{".git", "node_modules", "dist", "build", ".next", cfg.Project.ComponentsDir},
	}
}

// Scan walks the root directory and streams a report for every file that
// contains at least one extractable component. Files that fail to parse are
// logged and skipped; a broken file should not abort discovery.
func (c *Crawler) Scan(ctx context.Context, root string, onReport func(FileReport)) error {
	reserved := c.cfg.ReservedSet()

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !isReactFile(d.Name()) {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			return nil
		}

		parsed, err := parser.Parse(ctx, source, parser.LanguageForFile(path))
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			return nil
		}
		defer parsed.Close()

		scan := extractor.Scan(parsed, reserved)
		if len(scan.Candidates) == 0 {
			return nil
		}

		names := make([]string, 0, len(scan.Candidates))
		for _, cand := range scan.Candidates {
			names = append(names, cand.Name)
		}
		onReport(FileReport{Path: path, Components: names})
		return nil
	})
}

func isReactFile(name string) bool {
	switch filepath.Ext(name) {
	case ".jsx", ".tsx", ".js":
		return !strings.HasSuffix(name, ".test.js") && !strings.HasSuffix(name, ".spec.js")
	}
	return false
}
