package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/passgen-go/internal/app"
	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
	configinfra "github.com/doeshing/passgen-go/internal/infrastructure/config"
)

const envKeyEditor = "EDITOR"

// NewConfigCommand creates the config command with all subcommands. The whole
// tree runs on a lenient container so a broken file can be fixed from here.
func NewConfigCommand(container *app.Container) *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Inspect and change passgen configuration",
		Annotations: map[string]string{AnnotationLenientConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(cmd.Context(), cmd.OutOrStdout(), container, false)
		},
	}

	configCmd.AddCommand(
		newConfigShowCommand(container),
		newConfigGetCommand(container),
		newConfigSetCommand(container),
		newConfigEditCommand(container),
		newConfigValidateCommand(container),
		newConfigResetCommand(container),
		newConfigDiffCommand(container),
		newConfigPathCommand(container),
	)
	return configCmd
}

func newConfigShowCommand(container *app.Container) *cobra.Command {
	var defaults bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printConfig(cmd.Context(), cmd.OutOrStdout(), container, defaults)
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, "Print the built-in defaults instead")
	return cmd
}

func newConfigGetCommand(container *app.Container) *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print one value or section, e.g. preferences.default_tier",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				key = args[0]
			}
			if key == "" {
				return errors.New(ErrKeyRequired)
			}
			return printConfigValue(cmd.Context(), cmd.OutOrStdout(), container, key)
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Key path (e.g., preferences.default_length)")
	return cmd
}

func newConfigSetCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one value (YAML syntax) and save after validation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfigValue(cmd.Context(), cmd.OutOrStdout(), container, args[0], strings.Join(args[1:], " "))
		},
	}
}

func newConfigEditCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the configuration in $EDITOR and validate the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return editConfig(cmd, container)
		},
	}
}

func newConfigValidateCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateConfigFile(cmd.Context(), container); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
			return nil
		},
	}
}

func newConfigResetCommand(container *app.Container) *cobra.Command {
	var noBackup bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace the configuration with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetConfig(cmd.OutOrStdout(), container, !noBackup)
		},
	}
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not keep a copy of the current file")
	return cmd
}

func newConfigDiffCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "List values that differ from the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return diffConfig(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}
}

func newConfigPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := helpers.GetConfigLoader(container)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), loader.Path())
			return nil
		},
	}
}

func loadConfig(ctx context.Context, container *app.Container) (domain.Config, error) {
	if container.ConfigProvider == nil {
		return domain.Config{}, errors.New("config provider unavailable")
	}
	cfg, err := container.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func printConfig(ctx context.Context, out io.Writer, container *app.Container, defaults bool) error {
	cfg := configinfra.DefaultConfig()
	if !defaults {
		var err error
		if cfg, err = loadConfig(ctx, container); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func printConfigValue(ctx context.Context, out io.Writer, container *app.Container, keyPath string) error {
	cfg, err := loadConfig(ctx, container)
	if err != nil {
		return err
	}
	cfgMap, err := helpers.ConfigToMap(cfg)
	if err != nil {
		return err
	}
	value, found := helpers.TraverseNestedMap(cfgMap, strings.Split(keyPath, "."))
	if !found {
		return fmt.Errorf("key %s not found in configuration", keyPath)
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func updateConfigValue(ctx context.Context, out io.Writer, container *app.Container, keyPath, raw string) error {
	cfg, err := loadConfig(ctx, container)
	if err != nil {
		return err
	}
	cfgMap, err := helpers.ConfigToMap(cfg)
	if err != nil {
		return err
	}
	keys := strings.Split(keyPath, ".")
	previous, _ := helpers.TraverseNestedMap(cfgMap, keys)

	value, err := helpers.ParseYAMLValue(raw)
	if err != nil {
		return fmt.Errorf("failed to parse value: %w", err)
	}
	if !helpers.SetNestedMapValue(cfgMap, keys, value) {
		return fmt.Errorf("unknown configuration key %s", keyPath)
	}
	updated, err := helpers.MapToConfig(cfgMap)
	if err != nil {
		return err
	}
	if err := helpers.SaveConfigWithValidation(container, updated); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s updated: %v -> %v\n", keyPath, previous, value)
	return nil
}

// editConfig runs the editor on the file and re-checks it afterwards. EDITOR
// may carry arguments, e.g. "code --wait".
func editConfig(cmd *cobra.Command, container *app.Container) error {
	loader, err := helpers.GetConfigLoader(container)
	if err != nil {
		return err
	}
	editor := strings.Fields(os.Getenv(envKeyEditor))
	if len(editor) == 0 {
		editor = []string{DefaultEditorCommand}
	}

	run := exec.CommandContext(cmd.Context(), editor[0], append(editor[1:], loader.Path())...)
	run.Stdin = cmd.InOrStdin()
	run.Stdout = cmd.OutOrStdout()
	run.Stderr = cmd.ErrOrStderr()
	if err := run.Run(); err != nil {
		return fmt.Errorf("failed to run editor %s: %w", editor[0], err)
	}

	if err := validateConfigFile(cmd.Context(), container); err != nil {
		return fmt.Errorf("edited configuration needs fixing (run `passgen config edit` again): %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), MsgConfigurationValid)
	return nil
}

func validateConfigFile(ctx context.Context, container *app.Container) error {
	cfg, err := loadConfig(ctx, container)
	if err == nil {
		err = configapp.Validate(cfg)
	}
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func resetConfig(out io.Writer, container *app.Container, backup bool) error {
	loader, err := helpers.GetConfigLoader(container)
	if err != nil {
		return err
	}
	if backup {
		saved, err := loader.Backup()
		switch {
		case err == nil:
			fmt.Fprintf(out, "Previous configuration saved to %s\n", saved)
		case !errors.Is(err, os.ErrNotExist):
			return fmt.Errorf("failed to back up configuration: %w", err)
		}
	}
	if _, err := loader.Reset(); err != nil {
		return fmt.Errorf("failed to reset configuration: %w", err)
	}
	fmt.Fprintf(out, "Configuration reset at %s\n", loader.Path())
	return nil
}

// diffConfig prints one "key: default -> current" line per changed leaf.
func diffConfig(ctx context.Context, out io.Writer, container *app.Container) error {
	current, err := loadConfig(ctx, container)
	if err != nil {
		return err
	}
	currentMap, err := helpers.ConfigToMap(current)
	if err != nil {
		return err
	}
	defaultMap, err := helpers.ConfigToMap(configinfra.DefaultConfig())
	if err != nil {
		return err
	}

	currentFlat := helpers.FlattenConfigMap(currentMap)
	defaultFlat := helpers.FlattenConfigMap(defaultMap)
	changed := 0
	for _, key := range helpers.SortedKeys(currentFlat, defaultFlat) {
		want, have := defaultFlat[key], currentFlat[key]
		if cmp.Equal(want, have) {
			continue
		}
		fmt.Fprintf(out, "%s: %v -> %v\n", key, want, have)
		changed++
	}
	if changed == 0 {
		fmt.Fprintln(out, MsgNoDifferencesFromDefault)
	}
	return nil
}
