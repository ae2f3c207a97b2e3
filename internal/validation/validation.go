package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/pyforge/internal/model"
	pyforgeerrors "github.com/alexisbeaulieu97/pyforge/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	packageNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._-]*[a-zA-Z0-9])?$`)
	projectNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

	// Constraint operators ordered so two-character forms match before their
	// one-character prefixes.
	constraintOperators = []string{"==", ">=", "<=", "~=", "!=", ">", "<"}

	shellMetachars = []string{";", "|", "&", "$", "`"}
	urlPrefixes    = []string{"http://", "https://", "git+", "svn+"}
)

// ParsePackage validates a raw package specifier and produces a PackageSpec.
// Specifiers are later passed as individual process arguments, never through
// a shell, so rejecting metacharacters and URL forms here structurally
// prevents injection.
func ParsePackage(raw string) (model.PackageSpec, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.PackageSpec{}, pyforgeerrors.NewValidationError(raw, "package name cannot be empty", nil)
	}

	name := trimmed
	constraint := ""
	for _, op := range constraintOperators {
		if idx := strings.Index(trimmed, op); idx >= 0 {
			name = trimmed[:idx]
			constraint = trimmed[idx:]
			break
		}
	}

	for _, ch := range shellMetachars {
		if strings.Contains(name, ch) {
			return model.PackageSpec{}, pyforgeerrors.NewValidationError(trimmed, fmt.Sprintf("invalid character %q in package name", ch), nil)
		}
	}

	for _, prefix := range urlPrefixes {
		if strings.HasPrefix(name, prefix) {
			return model.PackageSpec{}, pyforgeerrors.NewValidationError(trimmed, "direct URLs are not supported, use package names only", nil)
		}
	}

	if !packageNamePattern.MatchString(name) {
		return model.PackageSpec{}, pyforgeerrors.NewValidationError(trimmed, "invalid package name format", nil)
	}

	return model.PackageSpec{Name: name, Constraint: constraint, Raw: trimmed}, nil
}

// ParsePackages validates a list of raw specifiers, returning the valid specs
// and one error per rejected entry.
func ParsePackages(raw []string) ([]model.PackageSpec, []error) {
	specs := make([]model.PackageSpec, 0, len(raw))
	var errs []error
	for _, entry := range raw {
		spec, err := ParsePackage(entry)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, errs
}

// ValidateProjectName checks that a project name is safe to use as a
// directory name.
func ValidateProjectName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return pyforgeerrors.NewValidationError(name, "project name cannot be empty", nil)
	}
	if !projectNamePattern.MatchString(trimmed) {
		return pyforgeerrors.NewValidationError(trimmed, "project name may only contain letters, numbers, spaces, hyphens and underscores", nil)
	}
	return nil
}

// Instance returns the shared validator configured with pyforge's custom
// tags. pkg_spec validates a package specifier, project_name a project name.
func Instance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("pkg_spec", func(fl validator.FieldLevel) bool {
			_, err := ParsePackage(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("project_name", func(fl validator.FieldLevel) bool {
			return ValidateProjectName(fl.Field().String()) == nil
		})

		validateInst = v
	})

	return validateInst
}
