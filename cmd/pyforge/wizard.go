package main

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/alexisbeaulieu97/pyforge/internal/presets"
	"github.com/alexisbeaulieu97/pyforge/internal/settings"
	"github.com/alexisbeaulieu97/pyforge/internal/validation"
)

const noPreset = "(none)"

// runWizard collects missing request parameters interactively, prefilled
// from persisted preferences.
func runWizard(opts *createOptions, prefs *settings.Settings) error {
	if opts.Name == "" {
		opts.Name = "MyProject"
	}
	if opts.PackagesText == "" && len(prefs.Packages) > 0 {
		opts.PackagesText = strings.Join(prefs.Packages, "\n")
	}
	preset := opts.Preset
	if preset == "" {
		preset = noPreset
	}

	presetOptions := make([]huh.Option[string], 0, len(presets.Names())+1)
	presetOptions = append(presetOptions, huh.NewOption(noPreset, noPreset))
	for _, name := range presets.Names() {
		presetOptions = append(presetOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Value(&opts.Name).
				Validate(validation.ValidateProjectName),
			huh.NewInput().
				Title("Destination directory").
				Value(&opts.Dir),
			huh.NewSelect[string]().
				Title("Template").
				Options(presetOptions...).
				Value(&preset),
			huh.NewText().
				Title("Packages (one per line, version constraints allowed)").
				Value(&opts.PackagesText),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate README.md?").
				Value(&opts.Readme),
			huh.NewConfirm().
				Title("Initialize a git repository?").
				Value(&opts.Git),
			huh.NewConfirm().
				Title("Clean up the environment if the run aborts?").
				Value(&opts.Cleanup),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	if preset == noPreset {
		opts.Preset = ""
	} else {
		opts.Preset = preset
	}
	return nil
}
