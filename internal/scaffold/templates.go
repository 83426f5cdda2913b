package scaffold

// Templates for the generated Python project, instantiated with
// {{.Name}} (project name) and {{.Package}} (import-safe package name).

const pyprojectTemplate = `[build-system]
requires = ["hatchling"]
build-backend = "hatchling.build"

[project]
name = "{{.Name}}"
version = "0.1.0"
description = ""
readme = "README.md"
requires-python = ">=3.10"
dependencies = []

[project.optional-dependencies]
dev = [
    "pytest",
    "mypy",
    "ruff",
    "black",
]

[project.scripts]
{{.Name}} = "{{.Package}}.cli:main"

[tool.ruff]
line-length = 100

[tool.mypy]
strict = true

[tool.pytest.ini_options]
testpaths = ["tests"]
`

const readmeTemplate = `# {{.Name}}

## Development

` + "```" + `bash
pip install -e ".[dev]"
pytest
` + "```" + `
`

const gitignoreTemplate = `__pycache__/
*.pyc
.venv/
dist/
build/
.mypy_cache/
.pytest_cache/
.ruff_cache/
site/
`

const initTemplate = `"""{{.Name}}."""

__version__ = "0.1.0"
`

const cliTemplate = `"""Command-line entry point for {{.Name}}."""


def main() -> None:
    print("{{.Name}} 0.1.0")


if __name__ == "__main__":
    main()
`

const testTemplate = `"""Tests for {{.Package}}."""

from {{.Package}} import __version__


def test_version() -> None:
    assert __version__ == "0.1.0"
`

const mkdocsTemplate = `site_name: {{.Name}}
theme:
  name: material
nav:
  - Home: index.md
`

const docsIndexTemplate = `# {{.Name}}
`

const ciWorkflowTemplate = `name: CI

on:
  push:
    branches: [main]
  pull_request:

jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-python@v5
        with:
          python-version: "3.12"
      - run: pip install -e ".[dev]"
      - run: ruff check .
      - run: mypy src
      - run: black --check .
      - run: pytest
`
