package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// LayoutDirs is the fixed set of subdirectories every project receives.
var LayoutDirs = []string{"src", "tests", "docs", "data", "notebooks", "config", "logs"}

// packageDirs additionally receive an __init__.py so they import as Python
// packages.
var packageDirs = map[string]bool{"src": true, "tests": true}

// CreateLayout creates the standard directory skeleton under projectDir.
// Each creation is independently idempotent; failures are collected rather
// than aborting, since layout is cosmetic.
func CreateLayout(projectDir string) (created []string, errs []error) {
	for _, name := range LayoutDirs {
		dir := filepath.Join(projectDir, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", name, err))
			continue
		}
		created = append(created, name)

		if packageDirs[name] {
			initFile := filepath.Join(dir, "__init__.py")
			if err := touch(initFile); err != nil {
				errs = append(errs, fmt.Errorf("create %s/__init__.py: %w", name, err))
			}
		}
	}
	return created, errs
}

func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// WriteManifest serializes the requested package list to requirements.txt
// with a generation header. Returns the written path.
func WriteManifest(projectDir string, specs []model.PackageSpec, now time.Time) (string, error) {
	path := filepath.Join(projectDir, "requirements.txt")

	var b strings.Builder
	b.WriteString("# Generated by pyforge\n")
	b.WriteString(fmt.Sprintf("# Date: %s\n\n", now.Format("2006-01-02 15:04:05")))
	for _, spec := range specs {
		b.WriteString(spec.Raw)
		b.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteReadme writes a generated project description document including the
// fixed directory layout. Returns the written path.
func WriteReadme(projectDir, projectName string, now time.Time) (string, error) {
	path := filepath.Join(projectDir, "README.md")
	content := fmt.Sprintf(`# %s

Created with pyforge on %s.

## Project Structure

`+"```"+`
%s/
├── src/           source code
├── tests/         test files
├── docs/          documentation
├── data/          data files
├── notebooks/     notebooks
├── config/        configuration files
├── logs/          log files
├── venv/          virtual environment (ignored by git)
├── requirements.txt
└── README.md
`+"```"+`

## Getting Started

1. Activate the virtual environment:
   - Windows: `+"`venv\\Scripts\\activate`"+`
   - macOS/Linux: `+"`source venv/bin/activate`"+`
2. Install dependencies:
   `+"```bash"+`
   pip install -r requirements.txt
   `+"```"+`
3. Run the tests:
   `+"```bash"+`
   pytest tests/
   `+"```"+`
`, projectName, now.Format("2006-01-02"), projectName)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// TreeSize recursively sums file sizes under dir. Faults are swallowed; the
// returned size is whatever was accumulated before any fault.
func TreeSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}

// CheckWritable probes dir for write permission by creating and removing a
// marker file.
func CheckWritable(dir string) error {
	probe := filepath.Join(dir, ".pyforge_write_test")
	if err := touch(probe); err != nil {
		return err
	}
	return os.Remove(probe)
}

// VenvPath returns the environment directory for a project.
func VenvPath(projectDir string) string {
	return filepath.Join(projectDir, "venv")
}

// PipExecutable returns the installer path inside a virtual environment.
func PipExecutable(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "pip.exe")
	}
	return filepath.Join(venvDir, "bin", "pip")
}

// VenvPython returns the interpreter path inside a virtual environment.
func VenvPython(venvDir string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Scripts", "python.exe")
	}
	return filepath.Join(venvDir, "bin", "python3")
}
