package pipeline

import (
	"path/filepath"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
)

// Options is the per-run option set.
type Options struct {
	// CreateManifestDoc enables README.md generation.
	CreateManifestDoc bool
	// CreateVCS enables git repository initialization.
	CreateVCS bool
	// CleanupOnAbort removes a partially created environment after a fatal
	// fault or cancellation.
	CleanupOnAbort bool
	// StrictInstall treats a partial package installation as a run failure
	// instead of a warning.
	StrictInstall bool
}

// Request is the immutable input of one provisioning run. Dir is the full
// project directory (destination joined with the project name); Packages
// passed validation before the request was constructed.
type Request struct {
	Dir      string
	Packages []model.PackageSpec
	Options  Options
}

// Name returns the project name derived from the directory.
func (r Request) Name() string {
	return filepath.Base(r.Dir)
}
