package gitrepo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ignorePatterns is the fixed set written to every new repository.
const ignorePatterns = `# Python
venv/
__pycache__/
*.py[cod]
*.egg-info/
build/
dist/
.eggs/

# IDE
.vscode/
.idea/
*.swp

# OS
.DS_Store
Thumbs.db

# Project
data/
logs/
*.db
*.sqlite3
.env
`

const commitMessage = "Initial commit: project created with pyforge"

// Init initializes a git repository at projectDir, writes the ignore file,
// stages everything, and creates the initial commit. An existing repository
// is reused. Returns the commit hash.
func Init(projectDir string, now time.Time) (string, error) {
	repo, err := git.PlainInit(projectDir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		repo, err = git.PlainOpen(projectDir)
	}
	if err != nil {
		return "", fmt.Errorf("init repository: %w", err)
	}

	if err := writeIgnoreFile(projectDir); err != nil {
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("stage files: %w", err)
	}

	hash, err := wt.Commit(commitMessage, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "pyforge",
			Email: "pyforge@localhost",
			When:  now,
		},
	})
	if err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}

	return hash.String(), nil
}

// IsRepository reports whether projectDir already contains a git repository.
func IsRepository(projectDir string) bool {
	_, err := os.Stat(filepath.Join(projectDir, ".git"))
	return err == nil
}

func writeIgnoreFile(projectDir string) error {
	path := filepath.Join(projectDir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.WriteFile(path, []byte(ignorePatterns), 0o644); err != nil {
		return fmt.Errorf("write .gitignore: %w", err)
	}
	return nil
}
