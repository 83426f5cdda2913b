package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fastcraft/internal/compact"
	"fastcraft/internal/tokens"
)

var (
	compactOutput      string
	compactDirectory   string
	compactTarget      string
	compactStdout      bool
	compactIgnoreDirs  string
	compactIgnoreFiles string
	compactCountTokens bool
	compactTokenModel  string
	compactGitignore   bool
	compactWatch       bool
)

// compactCmd represents the compact command
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Compact a Python codebase into terse structural notation",
	Long: `Compact walks a project tree, parses each Python file, and emits
one line per declaration in a dense notation suitable for LLM context:

  # pkg/models.py
  S:Data models.
  i:dataclasses
  D:User;name:str;email:str
  C:UserRepository<BaseRepository>
  m:add(self,user:User)->None
  F:create_user(name:str,email:str)->User
  E:DEFAULT_LIMIT

Per-file parse failures are reported as warnings and skipped; the run
still succeeds. Only an unwritable destination is fatal.

Examples:
  # Compact the current directory into compact_code.txt
  fastcraft compact

  # Stream to the console instead
  fastcraft compact --stdout

  # Compact one package and count tokens against the gpt-4 vocabulary
  fastcraft compact -t src/mypkg --count-tokens --token-model gpt-4

  # Re-run automatically on changes
  fastcraft compact --watch
`,
	RunE: runCompact,
}

func init() {
	rootCmd.AddCommand(compactCmd)

	compactCmd.Flags().StringVarP(&compactOutput, "output", "o", "compact_code.txt", "Destination file for aggregated output")
	compactCmd.Flags().StringVarP(&compactDirectory, "directory", "d", ".", "Project root to walk")
	compactCmd.Flags().StringVarP(&compactTarget, "target", "t", "", "Restrict processing to one file or subdirectory")
	compactCmd.Flags().BoolVar(&compactStdout, "stdout", false, "Stream output to the console instead of writing a file")
	compactCmd.Flags().StringVar(&compactIgnoreDirs, "ignore-dirs", "", "Comma-separated directory names to prune from the walk")
	compactCmd.Flags().StringVar(&compactIgnoreFiles, "ignore-files", "", "Comma-separated filename glob patterns to exclude")
	compactCmd.Flags().BoolVar(&compactCountTokens, "count-tokens", false, "Count tokens in the aggregated output")
	compactCmd.Flags().StringVar(&compactTokenModel, "token-model", "", "Model vocabulary for token counting (gpt-4, gpt-3.5-turbo, claude)")
	compactCmd.Flags().BoolVar(&compactGitignore, "gitignore", false, "Also exclude paths matched by the project's .gitignore")
	compactCmd.Flags().BoolVar(&compactWatch, "watch", false, "Re-run compaction when source files change")

	compactCmd.MarkFlagsMutuallyExclusive("output", "stdout")
	compactCmd.MarkFlagsMutuallyExclusive("stdout", "watch")
}

func runCompact(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	root, err := filepath.Abs(compactDirectory)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}

	tokenModel := compactTokenModel
	if tokenModel == "" {
		tokenModel = viper.GetString("compact.token_model")
	}

	// Fail fast on configuration, before any file is read.
	if compactCountTokens {
		if err := tokens.Validate(tokenModel); err != nil {
			return err
		}
	}

	opts := compact.Options{
		Root:         root,
		Target:       compactTarget,
		Output:       compactOutput,
		ToStdout:     compactStdout,
		IgnoreDirs:   ignoreList(cmd, "ignore-dirs", compactIgnoreDirs, "compact.ignore_dirs"),
		IgnoreFiles:  ignoreList(cmd, "ignore-files", compactIgnoreFiles, "compact.ignore_files"),
		UseGitignore: compactGitignore,
		Reporter:     NewCompactProgress(verbose, compactStdout),
	}

	if err := runCompactOnce(ctx, opts, tokenModel); err != nil {
		return err
	}

	if !compactWatch {
		return nil
	}

	log.Println("Watching for changes (Ctrl-C to stop)...")
	err = compact.Watch(ctx, compact.WatchConfig{
		Root:       root,
		IgnoreDirs: opts.IgnoreDirs,
		OnChange: func() {
			// A failing rerun keeps the watcher alive.
			if err := runCompactOnce(ctx, opts, tokenModel); err != nil {
				log.Printf("compact failed: %v", err)
			}
		},
	})
	if err != nil && ctx.Err() != nil {
		return nil // Ctrl-C
	}
	return err
}

// runCompactOnce executes one pipeline pass plus the optional token
// counting stage.
func runCompactOnce(ctx context.Context, opts compact.Options, tokenModel string) (err error) {
	result, err := compact.Run(ctx, opts)
	if err != nil {
		return err
	}

	if compactCountTokens {
		report, err := tokens.Count(result.Text, tokenModel)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, report.String())
	}
	return nil
}

// ignoreList resolves a comma-separated flag, falling back to the
// configured default when the flag was not set.
func ignoreList(cmd *cobra.Command, flag, value, viperKey string) []string {
	if !cmd.Flags().Changed(flag) {
		return viper.GetStringSlice(viperKey)
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
