package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"fastcraft/internal/fcerrors"
	"fastcraft/internal/runner"
)

// verifyTools maps tool names to their default invocations. The set is
// overridable via the verify.tools config list; each entry is a
// shell-quoted command line.
var verifyTools = map[string][]string{
	"ruff":   {"ruff", "check", "."},
	"mypy":   {"mypy", "src"},
	"black":  {"black", "--check", "."},
	"pytest": {"pytest"},
}

// verifyOrder keeps the default run order stable.
var verifyOrder = []string{"ruff", "mypy", "black", "pytest"}

func defaultVerifyToolNames() []string {
	return append([]string(nil), verifyOrder...)
}

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify [tool ...]",
	Short: "Run quality tools (ruff, mypy, black, pytest)",
	Long: `Verify runs the project's quality tools as subprocesses, streams
their output, and prints a summary table. The command fails when any
tool fails; a tool missing from PATH is reported as skipped.

Custom tool lines can be configured in .fastcraft.yaml:

  verify:
    tools:
      - "ruff check src"
      - "pytest -x"

Examples:
  fastcraft verify
  fastcraft verify ruff pytest
`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

// toolResult records one quality-tool outcome for the summary table.
type toolResult struct {
	name     string
	status   string
	duration time.Duration
}

func runVerify(cmd *cobra.Command, args []string) error {
	lines, err := selectedToolLines(args)
	if err != nil {
		return err
	}

	var results []toolResult
	failed := 0

	for _, line := range lines {
		name := line[0]
		start := time.Now()

		if err := runner.LookPath(name); err != nil {
			results = append(results, toolResult{name: name, status: "skipped (not installed)"})
			continue
		}

		invocation := runner.Command{Name: name, Args: line[1:]}
		if verbose {
			log.Printf("running: %s", invocation.Display())
		}
		pterm.DefaultSection.Println(invocation.Display())

		code, err := runner.Run(cmd.Context(), invocation, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}

		status := "passed"
		if code != 0 {
			status = fmt.Sprintf("failed (exit %d)", code)
			failed++
		}
		results = append(results, toolResult{name: name, status: status, duration: time.Since(start)})
	}

	renderVerifySummary(results)

	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d of %d tools failed", failed, len(results))
	}
	return nil
}

// selectedToolLines resolves the configured tool command lines,
// filtered to the named tools when any were given.
func selectedToolLines(names []string) ([][]string, error) {
	var lines [][]string
	for _, entry := range viper.GetStringSlice("verify.tools") {
		// Config entries are either bare tool names or full command
		// lines; bare names expand to the built-in invocation.
		if defaults, ok := verifyTools[entry]; ok {
			lines = append(lines, defaults)
			continue
		}
		parts, err := shellquote.Split(entry)
		if err != nil || len(parts) == 0 {
			return nil, fcerrors.InvalidArgumentf("bad verify.tools entry %q", entry)
		}
		lines = append(lines, parts)
	}

	if len(names) == 0 {
		return lines, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var filtered [][]string
	for _, line := range lines {
		if wanted[line[0]] {
			filtered = append(filtered, line)
			delete(wanted, line[0])
		}
	}
	for name := range wanted {
		return nil, fcerrors.InvalidArgumentf("unknown tool %q", name)
	}
	return filtered, nil
}

// renderVerifySummary prints the results table.
func renderVerifySummary(results []toolResult) {
	rows := pterm.TableData{{"Tool", "Status", "Duration"}}
	for _, r := range results {
		duration := ""
		if r.duration > 0 {
			duration = r.duration.Round(time.Millisecond).String()
		}
		rows = append(rows, []string{r.name, r.status, duration})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
