// Package scaffold generates src-layout Python projects.
package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"fastcraft/internal/fcerrors"
)

// Project carries the template inputs.
type Project struct {
	// Name is the project name as given on the command line.
	Name string
	// Package is the import-safe package name derived from Name.
	Package string
}

// NewProject validates the name and derives the package identifier
// (dashes become underscores).
func NewProject(name string) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, fcerrors.InvalidArgumentf("project name is required")
	}
	for _, ch := range name {
		ok := ch == '-' || ch == '_' ||
			(ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
		if !ok {
			return Project{}, fcerrors.InvalidArgumentf(
				"project name %q may only contain lowercase letters, digits, - and _", name)
		}
	}
	return Project{
		Name:    name,
		Package: strings.ReplaceAll(name, "-", "_"),
	}, nil
}

// fileSpec pairs a relative destination path with its template.
type fileSpec struct {
	path     string
	template string
}

// files lists the generated tree for one project.
func (p Project) files() []fileSpec {
	return []fileSpec{
		{"pyproject.toml", pyprojectTemplate},
		{"README.md", readmeTemplate},
		{".gitignore", gitignoreTemplate},
		{"mkdocs.yml", mkdocsTemplate},
		{"docs/index.md", docsIndexTemplate},
		{filepath.Join("src", p.Package, "__init__.py"), initTemplate},
		{filepath.Join("src", p.Package, "cli.py"), cliTemplate},
		{filepath.Join("tests", "test_"+p.Package+".py"), testTemplate},
		{filepath.Join(".github", "workflows", "ci.yml"), ciWorkflowTemplate},
	}
}

// Write generates the project under dir/<name>. It refuses to touch an
// existing non-empty directory and returns the created paths relative
// to the project root.
func Write(dir string, p Project) ([]string, error) {
	root := filepath.Join(dir, p.Name)

	if entries, err := os.ReadDir(root); err == nil && len(entries) > 0 {
		return nil, fcerrors.WrapIO(
			fcerrors.Newf("directory %s already exists and is not empty", root),
			"scaffold project")
	}

	var created []string
	for _, spec := range p.files() {
		content, err := renderTemplate(spec.template, p)
		if err != nil {
			return nil, err
		}

		dest := filepath.Join(root, spec.path)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return nil, fcerrors.WrapIO(err, "create project directory")
		}
		if err := os.WriteFile(dest, []byte(content), 0644); err != nil {
			return nil, fcerrors.WrapIO(err, "write project file")
		}
		created = append(created, spec.path)
	}
	return created, nil
}

func renderTemplate(text string, p Project) (string, error) {
	tmpl, err := template.New("scaffold").Parse(text)
	if err != nil {
		return "", fcerrors.Wrap(err, "parse template")
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, p); err != nil {
		return "", fcerrors.Wrap(err, "render template")
	}
	return sb.String(), nil
}
