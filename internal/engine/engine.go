// Package engine sequences one modularization run: parse, scan, resolve,
// rewrite the host, and render one module per extracted component.
package engine

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"modjsx/internal/config"
	"modjsx/internal/extractor"
	"modjsx/internal/generator"
	"modjsx/internal/parser"
	"modjsx/internal/resolver"
	"modjsx/internal/rewriter"
)

// Component is one generated output module.
type Component struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	Code     string `json:"code"`
}

// Result is the outcome of one run. Components appear in the declaration
// order of their source, never re-sorted.
type Result struct {
	UpdatedApp     string
	Components     []Component
	ProcessingTime time.Duration
}

// Engine runs modularization. It holds only immutable configuration, so a
// single instance is safe for concurrent Process calls: every run builds
// its own tree, candidate list, and import list.
type Engine struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Process modularizes JSX source text.
func (e *Engine) Process(ctx context.Context, source string) (*Result, error) {
	return e.ProcessLang(ctx, source, parser.JSX)
}

// ProcessLang modularizes source text parsed with the given grammar. A parse
// failure aborts the whole run; an input with no extractable components is
// returned unchanged with an empty module list.
func (e *Engine) ProcessLang(ctx context.Context, source string, lang parser.Language) (*Result, error) {
	start := time.Now()

	parsed, err := parser.Parse(ctx, []byte(source), lang)
	if err != nil {
		return nil, err
	}
	defer parsed.Close()

	scan := extractor.Scan(parsed, e.cfg.ReservedSet())
	if len(scan.Candidates) == 0 {
		return &Result{
			UpdatedApp:     source,
			Components:     []Component{},
			ProcessingTime: time.Since(start),
		}, nil
	}

	runtimeOpts := resolver.Options{
		Global:     e.cfg.Split.RuntimeGlobal,
		HookPrefix: e.cfg.Split.HookPrefix,
	}
	for _, c := range scan.Candidates {
		c.UsesRuntime = resolver.UsesRuntime(c.Node, parsed.Source, runtimeOpts)
		e.warnDanglingRefs(c, parsed.Source, scan.TopLevelNames)
	}

	quote := "'"
	if e.cfg.Format.Quote == "double" {
		quote = `"`
	}
	importLines := make([]string, 0, len(scan.Candidates))
	for _, c := range scan.Candidates {
		importLines = append(importLines,
			rewriter.ImportLine(c.Name, e.cfg.Project.ImportPrefix, quote, e.cfg.Format.Semicolons))
	}

	updated := rewriter.Rewrite(parsed.Source, scan.Removals, scan.ImportsEnd, importLines)

	fmtOpts := generator.FormatOptions{
		Quote:      e.cfg.Format.Quote,
		Indent:     e.cfg.Format.Indent,
		Semicolons: e.cfg.Format.Semicolons,
	}
	modOpts := generator.ModuleOptions{
		RuntimeModule: e.cfg.Split.RuntimeModule,
		RuntimeGlobal: e.cfg.Split.RuntimeGlobal,
		Format:        fmtOpts,
	}

	components := make([]Component, 0, len(scan.Candidates))
	for _, c := range scan.Candidates {
		code, fallback := generator.Render(c, modOpts)
		if fallback {
			log.Printf("warning: formatter fell back to raw output for %s", c.Name)
		}
		components = append(components, Component{
			Name:     c.Name,
			Filename: c.Name + lang.Ext(),
			Code:     code,
		})
	}

	hostFmt := generator.Format(updated, fmtOpts)
	if hostFmt.Fallback {
		log.Printf("warning: formatter fell back to raw output for host file")
	}

	return &Result{
		UpdatedApp:     hostFmt.Text,
		Components:     components,
		ProcessingTime: time.Since(start),
	}, nil
}

// ProcessFile modularizes a file on disk, choosing the grammar from its
// extension.
func (e *Engine) ProcessFile(ctx context.Context, path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	result, err := e.ProcessLang(ctx, string(source), parser.LanguageForFile(path))
	if err != nil {
		if pe, ok := err.(*parser.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return result, nil
}

// WriteResult persists a run next to the host file: the components
// directory is created if needed, every generated module is written into
// it, and the host file is overwritten last. Re-running on the same input
// is safe; overwriting prior outputs is expected. A failed write surfaces
// the path and leaves already-written siblings intact.
func (e *Engine) WriteResult(hostPath string, result *Result) error {
	if len(result.Components) == 0 {
		return nil
	}

	dir := filepath.Join(filepath.Dir(hostPath), e.cfg.Project.ComponentsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	for _, comp := range result.Components {
		path := filepath.Join(dir, comp.Filename)
		if err := os.WriteFile(path, []byte(comp.Code), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if err := os.WriteFile(hostPath, []byte(result.UpdatedApp), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", hostPath, err)
	}
	return nil
}

// warnDanglingRefs flags references from a candidate's body to other
// top-level host declarations. The generated module cannot resolve those;
// extraction still proceeds, the warning documents the known limitation.
func (e *Engine) warnDanglingRefs(c *extractor.Candidate, source []byte, topLevel map[string]bool) {
	refs := resolver.ReferencedNames(c.Node, source)
	for name := range refs {
		if c.Declared[name] || name == e.cfg.Split.RuntimeGlobal {
			continue
		}
		if topLevel[name] {
			log.Printf("warning: %s references host-local %s, which will be unresolved in the generated module", c.Name, name)
		}
	}
}
