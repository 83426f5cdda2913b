package compact

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastcraft/internal/fcerrors"
)

// Test Plan for Pipeline:
// - End-to-end: walk, extract, render, aggregate, write to file
// - Console mode streams to the provided writer, writes no file
// - A broken file is skipped; the run still succeeds and the healthy
//   files all appear in the output
// - Missing root fails before any work
// - Cancelled context aborts the run
// - Reporter sees the walk total and per-file events

const modelsSrc = `"""User models."""

from dataclasses import dataclass

MAX_USERS = 100


@dataclass
class User:
    name: str
    email: str
`

const apiSrc = `def handler(name: str, count: int = 0) -> bool:
    return True
`

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"models.py":  modelsSrc,
		"pkg/api.py": apiSrc,
	})

	out := filepath.Join(t.TempDir(), "compact.txt")
	result, err := Run(context.Background(), Options{
		Root:   root,
		Output: out,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, out, result.OutputPath)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(data)
	assert.Equal(t, result.Text, text)

	assert.Contains(t, text, "# models.py\n")
	assert.Contains(t, text, "S:User models.\n")
	assert.Contains(t, text, "i:dataclasses\n")
	assert.Contains(t, text, "E:MAX_USERS\n")
	assert.Contains(t, text, "D:User;name:str;email:str\n")
	assert.Contains(t, text, "# pkg/api.py\n")
	assert.Contains(t, text, "F:handler(name:str,count:int)->bool\n")

	// models.py sorts before pkg/api.py
	assert.Less(t, strings.Index(text, "# models.py"), strings.Index(text, "# pkg/api.py"))
}

func TestRun_StdoutMode(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"one.py": apiSrc})

	var buf bytes.Buffer
	result, err := Run(context.Background(), Options{
		Root:     root,
		ToStdout: true,
		Stdout:   &buf,
	})
	require.NoError(t, err)
	assert.Empty(t, result.OutputPath)
	assert.Equal(t, result.Text, buf.String())
	assert.Contains(t, buf.String(), "F:handler(name:str,count:int)->bool")
}

func TestRun_BrokenFileTolerated(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"broken.py": "def broken(:\n    pass\n",
		"good.py":   apiSrc,
	})

	var buf bytes.Buffer
	result, err := Run(context.Background(), Options{
		Root:     root,
		ToStdout: true,
		Stdout:   &buf,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "broken.py", result.Skipped[0].Path)
	assert.True(t, fcerrors.IsParse(result.Skipped[0].Reason))

	assert.Contains(t, buf.String(), "# good.py")
	assert.NotContains(t, buf.String(), "# broken.py")
}

func TestRun_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{
		Root:     filepath.Join(t.TempDir(), "gone"),
		ToStdout: true,
	})
	require.Error(t, err)
	assert.True(t, fcerrors.IsNotFound(err))
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"one.py": apiSrc})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Root: root, ToStdout: true, Stdout: &bytes.Buffer{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingReporter struct {
	total     int
	processed []string
	skipped   []string
	done      bool
}

func (r *recordingReporter) OnWalkComplete(n int)        { r.total = n }
func (r *recordingReporter) OnFileProcessed(path string) { r.processed = append(r.processed, path) }
func (r *recordingReporter) OnFileSkipped(path string, _ error) {
	r.skipped = append(r.skipped, path)
}
func (r *recordingReporter) OnComplete(*Result) { r.done = true }

func TestRun_ReporterEvents(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bad.py":  "class (:\n",
		"good.py": apiSrc,
	})

	rep := &recordingReporter{}
	_, err := Run(context.Background(), Options{
		Root:     root,
		ToStdout: true,
		Stdout:   &bytes.Buffer{},
		Reporter: rep,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, rep.total)
	assert.Equal(t, []string{"good.py"}, rep.processed)
	assert.Equal(t, []string{"bad.py"}, rep.skipped)
	assert.True(t, rep.done)
}
