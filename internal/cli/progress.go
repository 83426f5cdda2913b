package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"fastcraft/internal/compact"
)

// CompactProgress implements compact.Reporter with a progress bar and
// verbose per-file diagnostics. All progress output goes to stderr so
// --stdout notation stays clean.
type CompactProgress struct {
	verbose  bool
	toStdout bool
	bar      *progressbar.ProgressBar
}

// NewCompactProgress creates a progress reporter for the compact command.
func NewCompactProgress(verbose, toStdout bool) *CompactProgress {
	return &CompactProgress{verbose: verbose, toStdout: toStdout}
}

func (p *CompactProgress) OnWalkComplete(totalFiles int) {
	if p.verbose {
		log.Printf("Processing %d files", totalFiles)
		return
	}
	if p.toStdout {
		return
	}
	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Compacting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func (p *CompactProgress) OnFileProcessed(path string) {
	if p.verbose {
		log.Printf("  ok   %s", path)
		return
	}
	if p.bar != nil {
		p.bar.Add(1)
	}
}

func (p *CompactProgress) OnFileSkipped(path string, reason error) {
	if p.verbose {
		log.Printf("  skip %s: %v", path, reason)
		return
	}
	if p.bar != nil {
		p.bar.Add(1)
	}
	log.Printf("warning: skipped %s", path)
}

func (p *CompactProgress) OnComplete(result *compact.Result) {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}

	summary := fmt.Sprintf("✓ Compacted %d files (%d skipped)", result.Processed, len(result.Skipped))
	if result.OutputPath != "" {
		summary += " → " + result.OutputPath
	}
	fmt.Fprintln(os.Stderr, summary)

	if p.verbose {
		for _, s := range result.Skipped {
			log.Printf("  skipped %s: %v", s.Path, s.Reason)
		}
	}
}
