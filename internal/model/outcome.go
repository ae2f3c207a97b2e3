package model

import (
	"fmt"
)

// PackageSpec is a validated package identifier with an optional version
// constraint. Raw preserves the exact specifier text for process arguments
// and manifest output. Every PackageSpec handed to the installer passed the
// name-safety predicate first.
type PackageSpec struct {
	Name       string
	Constraint string
	Raw        string
}

func (s PackageSpec) String() string {
	return s.Raw
}

// RunOutcome is the final state of one provisioning run, computed once at run
// end and immutable after being emitted as a SummaryEvent.
type RunOutcome struct {
	Succeeded             bool
	ProjectPath           string
	InstalledPackageCount int
	ProjectSizeBytes      int64
	VCSInitialized        bool
}

// HumanSize formats a byte count for display.
func HumanSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", value)
}
