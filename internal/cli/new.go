package cli

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"fastcraft/internal/scaffold"
)

var newDir string

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new NAME",
	Short: "Scaffold a src-layout Python project",
	Long: `New generates a Python project skeleton: pyproject.toml with dev
tooling (pytest, mypy, ruff, black), a src/ package with a CLI entry
point, a tests/ directory, MkDocs configuration, and a CI workflow.

Examples:
  fastcraft new my-tool
  fastcraft new my-tool --dir ~/projects
`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringVar(&newDir, "dir", ".", "Parent directory for the new project")
}

func runNew(cmd *cobra.Command, args []string) error {
	project, err := scaffold.NewProject(args[0])
	if err != nil {
		return err
	}

	created, err := scaffold.Write(newDir, project)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Created project %s", project.Name)
	tree := pterm.TreeNode{Text: project.Name}
	for _, path := range created {
		tree.Children = append(tree.Children, pterm.TreeNode{Text: filepath.ToSlash(path)})
	}
	_ = pterm.DefaultTree.WithRoot(tree).Render()

	pterm.Info.Printfln("Next: cd %s && pip install -e \".[dev]\"", filepath.Join(newDir, project.Name))
	return nil
}
