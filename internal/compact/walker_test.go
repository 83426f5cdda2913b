package compact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastcraft/internal/fcerrors"
)

// Test Plan for Walker:
// - Only .py files collected, in lexicographic order of relative path
// - Ignored directory names are pruned, never descended into
// - Filename globs exclude by base name; slash patterns by rel path
// - Single-file target bypasses pruning but not exclusion
// - Missing root fails eagerly with not-found
// - Malformed exclude pattern fails with invalid-argument
// - .gitignore honored when requested

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func TestWalker_CollectsPythonFilesSorted(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"zeta.py":        "",
		"alpha.py":       "",
		"pkg/models.py":  "",
		"pkg/readme.md":  "",
		"pkg/sub/api.py": "",
		"notes.txt":      "",
	})

	w, err := NewWalker(WalkConfig{Root: root})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.py", "pkg/models.py", "pkg/sub/api.py", "zeta.py"}, files)
}

func TestWalker_PrunesIgnoredDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":                     "",
		"__pycache__/app.cpython.py": "",
		".venv/lib/site.py":          "",
		"src/__pycache__/cache.py":   "",
		"src/main.py":                "",
	})

	w, err := NewWalker(WalkConfig{
		Root:       root,
		IgnoreDirs: []string{"__pycache__", ".venv"},
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py", "src/main.py"}, files)
}

func TestWalker_ExcludesByGlob(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"models.py":           "",
		"test_models.py":      "",
		"pkg/test_helpers.py": "",
		"pkg/util.py":         "",
	})

	w, err := NewWalker(WalkConfig{
		Root:        root,
		IgnoreFiles: []string{"test_*.py"},
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"models.py", "pkg/util.py"}, files)
}

func TestWalker_SlashPatternMatchesRelPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"gen/schema.py": "",
		"src/schema.py": "",
	})

	w, err := NewWalker(WalkConfig{
		Root:        root,
		IgnoreFiles: []string{"gen/*.py"},
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/schema.py"}, files)
}

func TestWalker_SingleFileTarget(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"__pycache__/one.py": "",
		"two.py":             "",
	})

	// An explicit file inside an otherwise pruned directory is still
	// visited: pruning applies to the walk, not to a named target.
	w, err := NewWalker(WalkConfig{
		Root:       root,
		Target:     "__pycache__/one.py",
		IgnoreDirs: []string{"__pycache__"},
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"__pycache__/one.py"}, files)
}

func TestWalker_SingleFileTargetStillExcluded(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"test_one.py": ""})

	w, err := NewWalker(WalkConfig{
		Root:        root,
		Target:      "test_one.py",
		IgnoreFiles: []string{"test_*.py"},
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalker_UnreadableSubtreeWarnsAndContinues(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("running as root; mode bits do not deny access")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"locked/inner.py": "",
		"open/kept.py":    "",
		"top.py":          "",
	})

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var warns []SkippedFile
	w, err := NewWalker(WalkConfig{
		Root: root,
		OnWarn: func(path string, reason error) {
			warns = append(warns, SkippedFile{Path: path, Reason: reason})
		},
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)

	// Siblings of the denied subtree are still collected.
	assert.Equal(t, []string{"open/kept.py", "top.py"}, files)

	require.Len(t, warns, 1)
	assert.Equal(t, locked, warns[0].Path)
	assert.True(t, fcerrors.IsPermissionDenied(warns[0].Reason))
}

func TestWalker_UnreadableDirInsidePrunedNameIsSilent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"__pycache__/hidden/cache.py": "",
		"app.py":                      "",
	})

	// Pruning happens before any read of the directory, so an
	// unreadable directory under a pruned name is never touched and
	// never warned about.
	hidden := filepath.Join(root, "__pycache__", "hidden")
	require.NoError(t, os.Chmod(hidden, 0o000))
	t.Cleanup(func() { _ = os.Chmod(hidden, 0o755) })

	warned := false
	w, err := NewWalker(WalkConfig{
		Root:       root,
		IgnoreDirs: []string{"__pycache__"},
		OnWarn:     func(string, error) { warned = true },
	})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"app.py"}, files)
	assert.False(t, warned)
}

func TestWalker_MissingRoot(t *testing.T) {
	t.Parallel()

	w, err := NewWalker(WalkConfig{Root: filepath.Join(t.TempDir(), "no-such-dir")})
	require.NoError(t, err)

	_, err = w.Files()
	require.Error(t, err)
	assert.True(t, fcerrors.IsNotFound(err))
}

func TestWalker_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := NewWalker(WalkConfig{
		Root:        t.TempDir(),
		IgnoreFiles: []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.True(t, fcerrors.IsInvalidArgument(err))
}

func TestWalker_Gitignore(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":   "generated.py\nbuild/\n",
		"generated.py": "",
		"kept.py":      "",
		"build/out.py": "",
	})

	w, err := NewWalker(WalkConfig{Root: root, UseGitignore: true})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{"kept.py"}, files)
}

func TestWalker_EmptyTree(t *testing.T) {
	t.Parallel()

	w, err := NewWalker(WalkConfig{Root: t.TempDir()})
	require.NoError(t, err)

	files, err := w.Files()
	require.NoError(t, err)
	assert.Empty(t, files)
}
