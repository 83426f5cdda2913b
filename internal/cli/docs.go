package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"fastcraft/internal/runner"
)

var (
	docsStrict bool
	docsAddr   string
)

// docsCmd wraps the mkdocs CLI for documentation builds.
var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Build or serve project documentation via mkdocs",
	Long: `Docs wraps the mkdocs CLI. The mkdocs binary must be installed;
its exit codes are passed through unchanged.

Examples:
  fastcraft docs build --strict
  fastcraft docs serve --addr 127.0.0.1:8001
`,
}

var docsBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the documentation site",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mkArgs := []string{"build"}
		if docsStrict {
			mkArgs = append(mkArgs, "--strict")
		}
		return mkdocs(cmd, mkArgs...)
	},
}

var docsServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the documentation site locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mkArgs := []string{"serve"}
		if docsAddr != "" {
			mkArgs = append(mkArgs, "--dev-addr", docsAddr)
		}
		return mkdocs(cmd, mkArgs...)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsBuildCmd, docsServeCmd)

	docsBuildCmd.Flags().BoolVar(&docsStrict, "strict", false, "Fail the build on warnings")
	docsServeCmd.Flags().StringVar(&docsAddr, "addr", "", "Address to serve on (host:port)")
}

// mkdocs runs the mkdocs CLI, streaming its output and passing its
// exit code through.
func mkdocs(cmd *cobra.Command, args ...string) error {
	if err := runner.LookPath("mkdocs"); err != nil {
		return err
	}

	invocation := runner.Command{Name: "mkdocs", Args: args}
	if verbose {
		log.Printf("running: %s", invocation.Display())
	}

	code, err := runner.Run(cmd.Context(), invocation, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	if code != 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		os.Exit(code)
	}
	return nil
}
