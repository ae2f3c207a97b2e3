package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/pyforge/internal/logger"
	"github.com/alexisbeaulieu97/pyforge/internal/model"
	"github.com/alexisbeaulieu97/pyforge/internal/pipeline"
	"github.com/alexisbeaulieu97/pyforge/internal/presets"
	"github.com/alexisbeaulieu97/pyforge/internal/scaffold"
	"github.com/alexisbeaulieu97/pyforge/internal/settings"
	"github.com/alexisbeaulieu97/pyforge/internal/tui"
	"github.com/alexisbeaulieu97/pyforge/internal/validation"
)

type createOptions struct {
	Dir          string
	Name         string
	Packages     []string
	PackagesText string
	Preset       string
	Readme       bool
	Git          bool
	Cleanup      bool
	Strict       bool
	Plain        bool
}

func newCreateCmd(root *rootFlags, log *logger.Logger) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Provision a new Python project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.verbose {
				verbose, err := logger.New(logger.Options{Level: "debug", HumanReadable: true})
				if err != nil {
					return err
				}
				log = verbose
			}
			return runCreate(cmd, opts, log)
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Destination directory the project is created in")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Project name")
	cmd.Flags().StringSliceVarP(&opts.Packages, "packages", "p", nil, "Packages to install (repeatable, version constraints allowed)")
	cmd.Flags().StringVar(&opts.Preset, "preset", "", "Template whose package set is added to the request")
	cmd.Flags().BoolVar(&opts.Readme, "readme", true, "Generate README.md")
	cmd.Flags().BoolVar(&opts.Git, "git", false, "Initialize a git repository with an initial commit")
	cmd.Flags().BoolVar(&opts.Cleanup, "cleanup", false, "Remove a partial environment when the run aborts")
	cmd.Flags().BoolVar(&opts.Strict, "strict-install", false, "Fail the run unless every requested package installs")
	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "Disable the interactive display")

	return cmd
}

func runCreate(cmd *cobra.Command, opts *createOptions, log *logger.Logger) error {
	settingsPath, prefs := loadSettings(log)
	applySettingsDefaults(cmd, opts, prefs)

	interactive := !opts.Plain && term.IsTerminal(int(os.Stdout.Fd()))

	if opts.Dir == "" || opts.Name == "" {
		if !interactive {
			return fmt.Errorf("--dir and --name are required in non-interactive mode")
		}
		if err := runWizard(opts, prefs); err != nil {
			return err
		}
	}

	if err := validation.ValidateProjectName(opts.Name); err != nil {
		return err
	}

	specs, err := resolvePackages(cmd, opts)
	if err != nil {
		return err
	}

	parent, err := filepath.Abs(opts.Dir)
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", opts.Dir, err)
	}
	if err := scaffold.CheckWritable(parent); err != nil {
		return fmt.Errorf("no write permission for %s: %w", parent, err)
	}

	req := pipeline.Request{
		Dir:      filepath.Join(parent, strings.TrimSpace(opts.Name)),
		Packages: specs,
		Options: pipeline.Options{
			CreateManifestDoc: opts.Readme,
			CreateVCS:         opts.Git,
			CleanupOnAbort:    opts.Cleanup,
			StrictInstall:     opts.Strict,
		},
	}

	svc := pipeline.NewService(log)
	events, err := svc.Start(req)
	if err != nil {
		return err
	}

	var succeeded bool
	if interactive {
		succeeded, err = observeInteractive(req, svc, events)
	} else {
		succeeded, err = observePlain(cmd, svc, events)
	}
	if err != nil {
		return err
	}

	persistSettings(settingsPath, prefs, opts, req, specs, succeeded, log)

	if !succeeded {
		return errors.New("project creation failed")
	}
	return nil
}

func observeInteractive(req pipeline.Request, svc *pipeline.Service, events <-chan model.Event) (bool, error) {
	program := tea.NewProgram(tui.NewModel(req.Name(), svc.Cancel))

	go func() {
		for ev := range events {
			program.Send(tui.EventMsg{Event: ev})
		}
		program.Send(tui.RunFinishedMsg{})
	}()

	final, err := program.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(tui.Model)
	if !ok {
		return false, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.Succeeded(), nil
}

func observePlain(cmd *cobra.Command, svc *pipeline.Service, events <-chan model.Event) (bool, error) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)
	go func() {
		for range interrupt {
			svc.Cancel()
		}
	}()

	renderer := tui.NewPlainRenderer(cmd.OutOrStdout())
	succeeded := false
	for ev := range events {
		renderer.Render(ev)
		if done, ok := ev.(model.DoneEvent); ok {
			succeeded = done.Succeeded
		}
	}
	return succeeded, nil
}

// resolvePackages merges the preset's package set with explicit entries and
// validates everything. Invalid entries are reported as skipped; with
// --strict-install any invalid entry refuses the run.
func resolvePackages(cmd *cobra.Command, opts *createOptions) ([]model.PackageSpec, error) {
	var raw []string
	if opts.Preset != "" {
		packages, ok := presets.Get(opts.Preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q (see: pyforge presets)", opts.Preset)
		}
		raw = append(raw, packages...)
	}
	raw = append(raw, opts.Packages...)
	raw = append(raw, splitPackagesText(opts.PackagesText)...)

	specs, errs := validation.ParsePackages(raw)
	for _, err := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipping invalid package: %v\n", err)
	}
	if opts.Strict && len(errs) > 0 {
		return nil, fmt.Errorf("%d invalid package specifier(s)", len(errs))
	}
	return specs, nil
}

func splitPackagesText(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)...)
	}
	return out
}

func loadSettings(log *logger.Logger) (string, *settings.Settings) {
	prefs := settings.Default()

	path, err := settings.DefaultPath()
	if err != nil {
		log.Warn(fmt.Sprintf("cannot determine settings path: %v", err))
		return "", &prefs
	}

	loaded, err := settings.Load(path)
	if err != nil {
		log.Warn(fmt.Sprintf("ignoring unreadable settings file: %v", err))
		return path, &prefs
	}
	prefs = loaded
	return path, &prefs
}

// applySettingsDefaults lets persisted preferences back flags the operator
// did not set explicitly.
func applySettingsDefaults(cmd *cobra.Command, opts *createOptions, prefs *settings.Settings) {
	if !cmd.Flags().Changed("readme") {
		opts.Readme = prefs.CreateReadme
	}
	if !cmd.Flags().Changed("git") {
		opts.Git = prefs.CreateGit
	}
	if !cmd.Flags().Changed("cleanup") {
		opts.Cleanup = prefs.CleanupOnAbort
	}
	if !cmd.Flags().Changed("strict-install") {
		opts.Strict = !prefs.PartialInstallOK
	}
	if opts.Dir == "" && prefs.LastDir != "" {
		opts.Dir = prefs.LastDir
	}
	if opts.Preset == "" {
		opts.Preset = prefs.SelectedPreset
	}
}

func persistSettings(path string, prefs *settings.Settings, opts *createOptions, req pipeline.Request, specs []model.PackageSpec, succeeded bool, log *logger.Logger) {
	if path == "" {
		return
	}

	prefs.LastDir = filepath.Dir(req.Dir)
	prefs.SelectedPreset = opts.Preset
	prefs.CreateReadme = opts.Readme
	prefs.CreateGit = opts.Git
	prefs.CleanupOnAbort = opts.Cleanup
	prefs.PartialInstallOK = !opts.Strict
	prefs.Packages = prefs.Packages[:0]
	for _, spec := range specs {
		prefs.Packages = append(prefs.Packages, spec.Raw)
	}
	if succeeded {
		prefs.RememberProject(req.Dir)
	}

	if err := settings.Save(path, *prefs); err != nil {
		log.Warn(fmt.Sprintf("failed to save settings: %v", err))
	}
}
