package compact

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// Reporter receives pipeline progress events. Implementations decide
// how to surface them (progress bar, verbose log lines, nothing).
type Reporter interface {
	OnWalkComplete(totalFiles int)
	OnFileProcessed(path string)
	OnFileSkipped(path string, reason error)
	OnComplete(result *Result)
}

// nopReporter is used when the caller passes no reporter.
type nopReporter struct{}

func (nopReporter) OnWalkComplete(int)          {}
func (nopReporter) OnFileProcessed(string)      {}
func (nopReporter) OnFileSkipped(string, error) {}
func (nopReporter) OnComplete(*Result)          {}

// Options configures one pipeline run. Ignore-list defaults come from
// configuration; the pipeline itself reads no ambient state.
type Options struct {
	Root         string
	Target       string
	Output       string
	ToStdout     bool
	IgnoreDirs   []string
	IgnoreFiles  []string
	UseGitignore bool

	// Stdout is the console sink for ToStdout mode; defaults to
	// os.Stdout when nil.
	Stdout io.Writer

	Reporter Reporter
}

// Run executes the batch pipeline once: walk, extract, render,
// aggregate, write. Per-file parse failures and unreadable subtrees
// are recorded as skips and do not abort the run; the only fatal
// condition after walking begins is an unwritable destination.
func Run(ctx context.Context, opts Options) (*Result, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	result := &Result{}

	walker, err := NewWalker(WalkConfig{
		Root:         opts.Root,
		Target:       opts.Target,
		IgnoreDirs:   opts.IgnoreDirs,
		IgnoreFiles:  opts.IgnoreFiles,
		UseGitignore: opts.UseGitignore,
		OnWarn: func(path string, reason error) {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: reason})
			reporter.OnFileSkipped(path, reason)
		},
	})
	if err != nil {
		return nil, err
	}

	files, err := walker.Files()
	if err != nil {
		return nil, err
	}
	reporter.OnWalkComplete(len(files))

	extractor := NewExtractor()
	docs := make([]Document, 0, len(files))

	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		abs := filepath.Join(opts.Root, rel)
		source, err := os.ReadFile(abs)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Reason: err})
			reporter.OnFileSkipped(rel, err)
			continue
		}

		decls, err := extractor.Extract(source)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: rel, Reason: err})
			reporter.OnFileSkipped(rel, err)
			continue
		}

		docs = append(docs, Document{Path: rel, Lines: Render(decls)})
		result.Processed++
		reporter.OnFileProcessed(rel)
	}

	result.Text = Aggregate(docs)

	if opts.ToStdout {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}
		if err := WriteStream(out, result.Text); err != nil {
			return nil, err
		}
	} else {
		if err := WriteFile(opts.Output, result.Text); err != nil {
			return nil, err
		}
		result.OutputPath = opts.Output
	}

	reporter.OnComplete(result)
	return result, nil
}
