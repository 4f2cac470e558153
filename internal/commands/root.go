// Package commands wires the Loom CLI: the root scaffolding command
// and the doctor environment report.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loom-cli/loom"
	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/execx"
	"github.com/loom-cli/loom/internal/generators/backend"
	"github.com/loom-cli/loom/internal/generators/frontend"
	"github.com/loom-cli/loom/internal/input"
	"github.com/loom-cli/loom/internal/noderuntime"
	"github.com/loom-cli/loom/internal/output"
	"github.com/loom-cli/loom/internal/pm"
	"github.com/loom-cli/loom/internal/project"
	"github.com/loom-cli/loom/internal/scaffold"
	"github.com/loom-cli/loom/internal/validate"
)

// scaffoldOptions collects the root command's flags.
type scaffoldOptions struct {
	projectType  string
	name         string
	path         string
	yarn         bool
	pnpm         bool
	noTypeScript bool
	noSCSS       bool
	force        bool
	dryRun       bool
}

// RootCmd creates and returns the root command for the Loom CLI.
func RootCmd() *cobra.Command {
	var verbose bool
	opts := &scaffoldOptions{}

	cmd := &cobra.Command{
		Use:   "loom",
		Short: "Scaffold full-stack JavaScript projects",
		Long: `Loom scaffolds production-shaped JavaScript projects:
• Next.js frontends with a ready directory layout and SCSS setup
• Node.js/Express backends with TypeScript tooling
• Both at once, wired together under a single root

Every run is transactional: a failed scaffold rolls back completely
and leaves nothing behind.

Example:
  loom --type both --name my-shop`,
		Version: loom.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
		Run: func(cmd *cobra.Command, args []string) {
			if err := runScaffold(cmd.Context(), opts); err != nil {
				output.Error(err.Error())
				if _, ok := scaffold.ToolFailure(err); ok && !output.VerboseEnabled() {
					output.Step("Run again with --verbose to see the full tool output")
				}
				os.Exit(1)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.Flags().StringVarP(&opts.projectType, "type", "t", "", "Project type: frontend, backend, or both")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Project name (lowercase letters, digits, hyphens)")
	cmd.Flags().StringVarP(&opts.path, "path", "p", ".", "Directory to create the project in")
	cmd.Flags().BoolVar(&opts.yarn, "yarn", false, "Prefer yarn as the package manager")
	cmd.Flags().BoolVar(&opts.pnpm, "pnpm", false, "Prefer pnpm as the package manager")
	cmd.Flags().BoolVar(&opts.noTypeScript, "no-typescript", false, "Generate plain JavaScript instead of TypeScript")
	cmd.Flags().BoolVar(&opts.noSCSS, "no-scss", false, "Skip the SCSS style sheet setup")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing target directory without asking")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the plan without creating anything")

	return cmd
}

// runScaffold is the whole scaffolding flow: resolve configuration,
// check prerequisites, run the matching generator(s) under one
// transaction, and report the outcome.
func runScaffold(ctx context.Context, opts *scaffoldOptions) error {
	// An interrupt cancels the in-flight step; the failure then takes
	// the normal rollback path before the process exits.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaults, err := config.LoadDefaults()
	if err != nil {
		output.Warning(err.Error())
	}

	cfg, err := resolveProject(opts, defaults)
	if err != nil {
		return err
	}

	runner := newRunner()
	node, err := noderuntime.Check(ctx, pm.SystemProbe{}, runner)
	if err != nil {
		return err
	}
	if node.Version != "" {
		output.Info(fmt.Sprintf("Node.js %s (%s)", node.Version, node.Path))
	} else {
		output.Info(fmt.Sprintf("Node.js found at %s", node.Path))
	}

	mgr, found := pm.Resolve(preferences(opts, defaults), pm.SystemProbe{})
	if !found {
		output.Warning("No package manager found on PATH; assuming npm is available")
	}
	cfg.PackageManager = mgr
	output.Info(fmt.Sprintf("Using %s", mgr))

	err = dispatch(ctx, runner, cfg, scaffold.Options{
		Overwrite: opts.force,
		DryRun:    opts.dryRun,
	})
	if errors.Is(err, project.ErrConflict) && !opts.force {
		output.Warning(err.Error())
		if !input.Confirm("Overwrite it?", false) {
			return err
		}
		err = dispatch(ctx, runner, cfg, scaffold.Options{
			Overwrite: true,
			DryRun:    opts.dryRun,
		})
	}
	if err != nil {
		return err
	}

	if opts.dryRun {
		output.Success(fmt.Sprintf("Dry run complete: %s project %q", cfg.Type, cfg.Name))
		return nil
	}

	output.Success(fmt.Sprintf("Created %s project: %s", cfg.Type, cfg.Root()))
	printNextSteps(cfg)
	return nil
}

// newRunner builds the production command runner. Verbose mode streams
// the external tools' own output with a gutter prefix so it reads apart
// from Loom's messages; otherwise a spinner covers it.
func newRunner() *execx.Executor {
	if !output.VerboseEnabled() {
		return execx.NewExecutor(nil)
	}
	return execx.NewExecutor(&execx.Options{
		Stdout: execx.NewPrefixWriter(os.Stdout, "   │ "),
		Stderr: execx.NewStyledWriter(os.Stderr, "   │ ", "yellow"),
	})
}

// dispatch picks the generator(s) for the configured project type and
// runs them through a fresh orchestrator.
func dispatch(ctx context.Context, runner execx.Runner, cfg config.Project, opts scaffold.Options) error {
	orch := scaffold.New(runner, opts)
	switch cfg.Type {
	case config.Both:
		return orch.RunBoth(ctx, cfg, backend.New(), frontend.New())
	case config.Backend:
		return orch.Run(ctx, cfg, backend.New())
	default:
		return orch.Run(ctx, cfg, frontend.New())
	}
}

// resolveProject turns flags, prompts, and defaults into the resolved
// project configuration. Values given on the command line fail fast
// when invalid; missing values are solicited interactively until they
// validate.
func resolveProject(opts *scaffoldOptions, defaults config.Defaults) (config.Project, error) {
	var projType config.Type
	if strings.TrimSpace(opts.projectType) == "" {
		answer, err := input.PromptValidated("Project type (frontend, backend, both)", "", func(s string) error {
			_, err := validate.ProjectType(s)
			return err
		})
		if err != nil {
			return config.Project{}, err
		}
		projType, _ = validate.ProjectType(answer)
	} else {
		t, err := validate.ProjectType(opts.projectType)
		if err != nil {
			return config.Project{}, err
		}
		projType = t
	}

	name := strings.TrimSpace(opts.name)
	if name == "" {
		var err error
		name, err = input.PromptValidated("Project name", "", validate.Name)
		if err != nil {
			return config.Project{}, err
		}
	} else if err := validate.Name(name); err != nil {
		return config.Project{}, err
	}

	base, err := validate.BasePath(opts.path)
	if err != nil {
		return config.Project{}, err
	}

	return config.Project{
		Type:        projType,
		Name:        name,
		BasePath:    base,
		TypeScript:  defaults.TypeScript && !opts.noTypeScript,
		StyleSheets: defaults.StyleSheets && !opts.noSCSS,
	}, nil
}

// preferences merges the package manager flags with the configured
// default. Explicit flags outrank the config file.
func preferences(opts *scaffoldOptions, defaults config.Defaults) pm.Preferences {
	prefs := pm.Preferences{Yarn: opts.yarn, Pnpm: opts.pnpm}
	if !opts.yarn && !opts.pnpm {
		switch defaults.PackageManager {
		case "yarn":
			prefs.Yarn = true
		case "pnpm":
			prefs.Pnpm = true
		}
	}
	return prefs
}

func printNextSteps(cfg config.Project) {
	output.Info("Next steps:")
	switch cfg.Type {
	case config.Both:
		output.Step(fmt.Sprintf("cd %s/backend && %s   # API on port 3001", cfg.Name, cfg.PackageManager.DevCommand()))
		output.Step(fmt.Sprintf("cd %s/frontend && %s  # app on port 3000", cfg.Name, cfg.PackageManager.DevCommand()))
	default:
		output.Step(fmt.Sprintf("cd %s", cfg.Name))
		output.Step(cfg.PackageManager.DevCommand())
	}
}
