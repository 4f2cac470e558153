package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/loom-cli/loom/internal/config"
	"github.com/loom-cli/loom/internal/execx"
	"github.com/loom-cli/loom/internal/noderuntime"
	"github.com/loom-cli/loom/internal/output"
	"github.com/loom-cli/loom/internal/pm"
)

// toolStatus is one row of the doctor report.
type toolStatus struct {
	Name    string `yaml:"name"`
	Found   bool   `yaml:"found"`
	Path    string `yaml:"path,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// doctorReport is everything doctor learned about the environment.
type doctorReport struct {
	Tools    []toolStatus `yaml:"tools"`
	Resolved string       `yaml:"resolved_package_manager"`
	Assumed  bool         `yaml:"assumed,omitempty"` // resolved manager was not actually found
}

// DoctorCmd creates and returns the 'doctor' command reporting which
// tools Loom can see and which package manager it would use.
func DoctorCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the toolchain Loom depends on",
		Long: `Probes for Node.js and the supported package managers, shows their
paths and versions, and reports which package manager a scaffold run
would pick.`,
		Run: func(cmd *cobra.Command, args []string) {
			// Resolve with the defaults a flagless scaffold run would use.
			defaults, err := config.LoadDefaults()
			if err != nil {
				output.Warning(err.Error())
			}
			prefs := preferences(&scaffoldOptions{}, defaults)

			report := buildReport(cmd.Context(), prefs, pm.SystemProbe{}, execx.NewExecutor(nil))

			if asYAML {
				data, err := yaml.Marshal(report)
				if err != nil {
					output.Error(err.Error())
					os.Exit(1)
				}
				fmt.Print(string(data))
				return
			}

			printReport(report)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Emit the report as YAML")

	return cmd
}

// buildReport probes node plus every supported package manager, and
// reports the manager the given preferences would resolve to.
func buildReport(ctx context.Context, prefs pm.Preferences, probe pm.Probe, runner execx.Runner) doctorReport {
	var report doctorReport

	node := toolStatus{Name: "node"}
	if info, err := noderuntime.Check(ctx, probe, runner); err == nil {
		node.Found = true
		node.Path = info.Path
		node.Version = info.Version
	} else if !errors.Is(err, noderuntime.ErrNotFound) {
		output.Verbose(fmt.Sprintf("node probe: %v", err))
	}
	report.Tools = append(report.Tools, node)

	for _, mgr := range []pm.Manager{pm.Yarn, pm.Pnpm, pm.Npm} {
		status := toolStatus{Name: mgr.String()}
		if path, err := probe.LookPath(mgr.String()); err == nil {
			status.Found = true
			status.Path = path
			if version, err := runner.Output(ctx, "", mgr.String(), "--version"); err == nil {
				status.Version = version
			}
		}
		report.Tools = append(report.Tools, status)
	}

	resolved, found := pm.Resolve(prefs, probe)
	report.Resolved = resolved.String()
	report.Assumed = !found

	return report
}

func printReport(report doctorReport) {
	output.Info("Toolchain:")
	for _, tool := range report.Tools {
		switch {
		case tool.Found && tool.Version != "":
			output.Step(fmt.Sprintf("%-5s %s (%s)", tool.Name, tool.Version, tool.Path))
		case tool.Found:
			output.Step(fmt.Sprintf("%-5s found at %s", tool.Name, tool.Path))
		default:
			output.Step(fmt.Sprintf("%-5s not found", tool.Name))
		}
	}

	if report.Assumed {
		output.Warning(fmt.Sprintf("No package manager found; scaffolds would assume %s", report.Resolved))
		return
	}
	output.Success(fmt.Sprintf("Scaffolds would use %s", report.Resolved))
}
