package cli

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"fastcraft/internal/runner"
)

var (
	repoPrivate bool
	secretBody  string
)

// githubCmd groups the hosting-platform wrappers. Every subcommand
// marshals arguments to the gh CLI and surfaces its exit code verbatim.
var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Manage GitHub repositories, workflows, and secrets via gh",
	Long: `Github wraps the gh CLI for common repository management tasks.
The gh binary must be installed and authenticated; its exit codes are
passed through unchanged.

Examples:
  fastcraft github repo create my-tool --private
  fastcraft github workflow run ci.yml
  fastcraft github secret set PYPI_TOKEN --body "$TOKEN"
`,
}

var githubRepoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Repository management",
}

var githubRepoCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a repository and push the current project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ghArgs := []string{"repo", "create", args[0], "--source", ".", "--push"}
		if repoPrivate {
			ghArgs = append(ghArgs, "--private")
		} else {
			ghArgs = append(ghArgs, "--public")
		}
		return gh(cmd, ghArgs...)
	},
}

var githubRepoViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current repository",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gh(cmd, "repo", "view")
	},
}

var githubWorkflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Workflow management",
}

var githubWorkflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return gh(cmd, "workflow", "list")
	},
}

var githubWorkflowRunCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Trigger a workflow run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return gh(cmd, "workflow", "run", args[0])
	},
}

var githubSecretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Secret management",
}

var githubSecretSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Set a repository secret",
	Long:  `Set a repository secret. The value comes from --body, or from stdin when --body is omitted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ghArgs := []string{"secret", "set", args[0]}
		if secretBody != "" {
			ghArgs = append(ghArgs, "--body", secretBody)
		}
		return gh(cmd, ghArgs...)
	},
}

func init() {
	rootCmd.AddCommand(githubCmd)
	githubCmd.AddCommand(githubRepoCmd, githubWorkflowCmd, githubSecretCmd)
	githubRepoCmd.AddCommand(githubRepoCreateCmd, githubRepoViewCmd)
	githubWorkflowCmd.AddCommand(githubWorkflowListCmd, githubWorkflowRunCmd)
	githubSecretCmd.AddCommand(githubSecretSetCmd)

	githubRepoCreateCmd.Flags().BoolVar(&repoPrivate, "private", false, "Create a private repository")
	githubSecretSetCmd.Flags().StringVar(&secretBody, "body", "", "Secret value (read from stdin when omitted)")
}

// gh runs the gh CLI with the given arguments, streaming its output.
// A non-zero gh exit code becomes this process's exit code.
func gh(cmd *cobra.Command, args ...string) error {
	if err := runner.LookPath("gh"); err != nil {
		return err
	}

	invocation := runner.Command{Name: "gh", Args: args, Stdin: os.Stdin}
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
