package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/cutline/internal/config"
	"github.com/mrz1836/cutline/internal/errors"
)

// ConfigShowReport is the config show command's JSON output.
type ConfigShowReport struct {
	Config      *config.Config `json:"config"`
	GlobalFile  string         `json:"global_file,omitempty"`
	ProjectFile string         `json:"project_file,omitempty"`
}

// ConfigInitFlags holds flags specific to the config init command.
type ConfigInitFlags struct {
	Global bool
	Force  bool
}

// AddConfigCommand adds the config command and its subcommands.
func AddConfigCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and create configuration files",
	}
	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigInitCmd(a, &ConfigInitFlags{}))
	root.AddCommand(cmd)
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the effective cutline configuration after merging, in order of
precedence:
  - command-line flags
  - CUTLINE_* environment variables
  - project config (.cutline/config.yaml)
  - global config (~/.cutline/config.yaml)
  - built-in defaults

Examples:
  cutline config show
  CUTLINE_PLAYBACK_FPS=60 cutline config show
  cutline config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd, a)
		},
	}
}

func runConfigShow(cmd *cobra.Command, a *app) error {
	report := ConfigShowReport{Config: a.cfg}
	if p, err := config.GlobalConfigPath(); err == nil && fileExists(p) {
		report.GlobalFile = p
	}
	if p := config.ProjectConfigPath(); fileExists(p) {
		report.ProjectFile = p
	}

	out := a.output(cmd)
	if a.flags.Output == OutputJSON {
		return out.JSON(report)
	}

	data, err := marshalYAML(a.cfg)
	if err != nil {
		return err
	}
	out.Text(fmt.Sprintf("# global:  %s", orNone(report.GlobalFile)))
	out.Text(fmt.Sprintf("# project: %s", orNone(report.ProjectFile)))
	out.Text(string(bytes.TrimRight(data, "\n")))
	return nil
}

func newConfigInitCmd(a *app, flags *ConfigInitFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write the built-in defaults to .cutline/config.yaml in the current
directory, or to ~/.cutline/config.yaml with --global. An existing file is
only replaced after confirmation, or without asking when --force is set.

Examples:
  cutline config init
  cutline config init --global --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, a, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.Global, "global", false, "write the global config instead of the project config")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite an existing file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, a *app, flags *ConfigInitFlags) error {
	path := config.ProjectConfigPath()
	if flags.Global {
		var err error
		if path, err = config.GlobalConfigPath(); err != nil {
			return err
		}
	}
	if fileExists(path) && !flags.Force {
		overwrite, err := confirmOverwrite(a, path)
		if err != nil {
			return err
		}
		if !overwrite {
			a.output(cmd).Info("Operation canceled.")
			return nil
		}
	}

	data, err := marshalYAML(config.DefaultConfig())
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	a.logger.Info().Str("path", path).Msg("config written")
	out := a.output(cmd)
	if a.flags.Output == OutputJSON {
		return out.JSON(map[string]string{"path": path})
	}
	out.Success("wrote " + path)
	return nil
}

// confirmOverwrite asks before replacing an existing config file. Without a
// terminal, or with JSON output, there is nobody to ask and the file is kept.
func confirmOverwrite(a *app, path string) (bool, error) {
	if a.flags.Output == OutputJSON || !terminalCheck() {
		return false, errors.NewExitCode2Error(errors.Wrapf(errors.ErrConfigExists, "%s", path))
	}
	confirmed, err := confirmOverwriteFunc(path)
	if err != nil {
		return false, errors.Wrap(err, "failed to get confirmation")
	}
	return confirmed, nil
}

// confirmOverwriteFunc is a variable so tests can answer the prompt.
//
//nolint:gochecknoglobals // Required for test injection of the confirmation prompt
var confirmOverwriteFunc = promptOverwrite

func promptOverwrite(path string) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Overwrite %s?", path)).
				Description("The current settings are replaced with the defaults.").
				Affirmative("Yes, overwrite").
				Negative("No, keep it").
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirm, nil
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
