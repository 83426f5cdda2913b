package compact

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"

	"fastcraft/internal/fcerrors"
)

// sourceExt is the file extension the walker targets.
const sourceExt = ".py"

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// WalkConfig configures a Walker. Ignore-list defaults come from
// configuration and are threaded through explicitly; the walker reads
// no ambient state.
type WalkConfig struct {
	// Root is the project root the walk starts from. Relative output
	// paths are computed against it.
	Root string

	// Target optionally restricts the walk to one file or subdirectory
	// under Root. An explicit file target bypasses directory pruning
	// but not filename exclusion.
	Target string

	// IgnoreDirs are directory names pruned from the walk by exact
	// path-segment match. Pruned directories are never descended into.
	IgnoreDirs []string

	// IgnoreFiles are filename glob patterns to exclude. Patterns
	// containing a slash match against the root-relative path instead
	// of the base name.
	IgnoreFiles []string

	// UseGitignore additionally excludes paths matched by the root's
	// .gitignore, when one exists.
	UseGitignore bool

	// OnWarn is invoked for tolerated per-subtree failures (unreadable
	// directories). May be nil.
	OnWarn func(path string, err error)
}

// Walker produces the ordered sequence of candidate source files.
type Walker struct {
	root      string
	target    string
	pruneDirs map[string]bool
	excludes  []compiledPattern
	ignorer   *gitignore.GitIgnore
	onWarn    func(path string, err error)
}

// NewWalker compiles the configured patterns and returns a walker.
// A malformed exclude pattern is an invalid-argument error.
func NewWalker(cfg WalkConfig) (*Walker, error) {
	w := &Walker{
		root:      cfg.Root,
		target:    cfg.Target,
		pruneDirs: make(map[string]bool, len(cfg.IgnoreDirs)),
		onWarn:    cfg.OnWarn,
	}
	if w.onWarn == nil {
		w.onWarn = func(string, error) {}
	}

	for _, name := range cfg.IgnoreDirs {
		name = strings.TrimSpace(name)
		if name != "" {
			w.pruneDirs[name] = true
		}
	}

	for _, pattern := range cfg.IgnoreFiles {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fcerrors.InvalidArgumentf("bad ignore pattern %q: %v", pattern, err)
		}
		w.excludes = append(w.excludes, compiledPattern{pattern: pattern, glob: g})
	}

	if cfg.UseGitignore {
		ign, err := gitignore.CompileIgnoreFile(filepath.Join(cfg.Root, ".gitignore"))
		if err == nil {
			w.ignorer = ign
		}
	}

	return w, nil
}

// Files walks the tree and returns root-relative slash paths in
// lexicographic order. A missing start path fails with a not-found
// error before any work; an unreadable subtree is reported through
// OnWarn and the walk continues with its siblings.
func (w *Walker) Files() ([]string, error) {
	start := w.root
	if w.target != "" {
		if filepath.IsAbs(w.target) {
			start = w.target
		} else {
			start = filepath.Join(w.root, w.target)
		}
	}

	info, err := os.Stat(start)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fcerrors.NotFoundf("path does not exist: %s", start)
		}
		return nil, fcerrors.Wrap(err, "stat start path")
	}

	// A single-file target skips directory pruning entirely but still
	// honors extension and exclusion checks.
	if !info.IsDir() {
		rel, err := w.relPath(start)
		if err != nil {
			return nil, err
		}
		if filepath.Ext(start) != sourceExt || w.excluded(rel) {
			return []string{}, nil
		}
		return []string{rel}, nil
	}

	files := []string{}
	err = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Failed subtree: warn and keep walking siblings. Only a
			// true permission failure carries the permission class;
			// anything else (a directory vanishing mid-walk) stays a
			// plain I/O cause.
			if os.IsPermission(err) {
				w.onWarn(path, fcerrors.Wrap(fcerrors.ErrPermissionDenied, err.Error()))
			} else {
				w.onWarn(path, fcerrors.Wrap(err, "read directory"))
			}
			return nil
		}

		if d.IsDir() {
			if path != start && w.pruneDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}

		if filepath.Ext(path) != sourceExt {
			return nil
		}

		rel, rerr := w.relPath(path)
		if rerr != nil {
			return rerr
		}
		if w.excluded(rel) {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// WalkDir visits entries in lexical order already; sorting again
	// makes the ordering a guarantee rather than a property of the
	// platform's directory enumeration.
	sort.Strings(files)
	return files, nil
}

// relPath converts an absolute path to a root-relative slash path.
func (w *Walker) relPath(path string) (string, error) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return "", fcerrors.Wrap(err, "relative path")
	}
	return filepath.ToSlash(rel), nil
}

// excluded reports whether a root-relative path matches any exclude
// pattern or the .gitignore.
func (w *Walker) excluded(rel string) bool {
	base := filepath.Base(rel)
	for _, cp := range w.excludes {
		if strings.Contains(cp.pattern, "/") {
			if cp.glob.Match(rel) {
				return true
			}
			continue
		}
		if cp.glob.Match(base) {
			return true
		}
	}
	if w.ignorer != nil && w.ignorer.MatchesPath(rel) {
		return true
	}
	return false
}
