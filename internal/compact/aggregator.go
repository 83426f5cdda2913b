package compact

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"fastcraft/internal/fcerrors"
)

// Aggregate concatenates rendered documents in walker order, each
// section preceded by a header line naming the originating relative
// path.
func Aggregate(docs []Document) string {
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("# ")
		sb.WriteString(doc.Path)
		sb.WriteByte('\n')
		for _, line := range doc.Lines {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// WriteFile writes the aggregated text to path, creating parent
// directories as needed and overwriting any existing file. An
// unwritable destination is the pipeline's one fatal condition after
// work has been done.
func WriteFile(path, text string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fcerrors.WrapIO(err, "create output directory")
		}
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fcerrors.WrapIO(err, "write output file")
	}
	return nil
}

// WriteStream streams the aggregated text to w (console mode).
func WriteStream(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return fcerrors.WrapIO(err, "write output stream")
	}
	return nil
}
