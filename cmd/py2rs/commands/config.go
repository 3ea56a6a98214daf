package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/py2rs/config"
	"github.com/teranos/py2rs/display"
	"github.com/teranos/py2rs/errors"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and create py2rs configuration",
	}

	var (
		format      string
		showSources bool
	)
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showSources {
				return runConfigSources(cmd)
			}
			return runConfigShow(cmd, format)
		},
	}
	show.Flags().StringVar(&format, "format", "toml", "Output format: toml, json, yaml")
	show.Flags().BoolVar(&showSources, "sources", false, "List every setting with the source it came from")

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Long:  "Write the built-in defaults as TOML, to ./" + config.ProjectConfigName + " unless a path is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigName
			if len(args) == 1 {
				path = args[0]
			}
			return runConfigInit(cmd, path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file (the old one is kept as .back1)")

	validate := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate the effective configuration or a single file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup already loaded and validated the merged configuration
			if len(args) == 1 {
				if _, err := config.LoadFromFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}

	cmd.AddCommand(show, initCmd, validate)
	return cmd
}

func runConfigShow(cmd *cobra.Command, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := display.MarshalJSON(effective, false)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(effective)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# py2rs configuration\n%s", data)
	case "toml":
		data, err := toml.Marshal(effective)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# py2rs configuration\n%s", data)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigSources(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	settings, err := (&config.Loader{ExplicitPath: path}).Introspect()
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd) {
		data, err := display.MarshalJSON(settings, false)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	rows := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range settings {
		rows = append(rows, []string{s.Key, fmt.Sprintf("%q", fmt.Sprint(s.Value)), string(s.Source), s.SourcePath})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render settings table")
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}

func runConfigInit(cmd *cobra.Command, path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
	}
	if err := config.Save(config.Defaults(), path); err != nil {
		return err
	}
	abs, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", abs)
	return nil
}
