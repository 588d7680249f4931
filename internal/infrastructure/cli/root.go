package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	configapp "github.com/doeshing/passgen-go/internal/application/config"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/passgen-go/internal/infrastructure/random"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose    bool
	ConfigPath string
	// Random replaces the default random source; tests pass a seeded one.
	Random ports.RandomSource
	// LenientConfig is set per command from AnnotationLenientConfig.
	LenientConfig bool
}

type generateOptions struct {
	length    int
	tier      int
	copy      bool
	noHistory bool
}

// NewRootCmd wires the cobra root command. The container is built once the
// flags are parsed so --config and --verbose take effect.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container := &app.Container{}
	rootGen := &generateOptions{}
	var seed uint64

	root := &cobra.Command{
		Use:   "passgen",
		Short: "passgen - random password generator",
		Long: "passgen generates passwords from a length and a tier (1 lowercase, 2 +uppercase, " +
			"3 +digits, 4-5 +symbols), copies them to the clipboard and keeps a history.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, container, rootGen)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if annotated(cmd, commands.AnnotationSkipContainer) {
				return nil
			}
			opts.LenientConfig = annotated(cmd, commands.AnnotationLenientConfig)
			if cmd.Flags().Changed("seed") {
				opts.Random = random.NewSeeded(seed)
			}
			return loadContainer(cmd, container, opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return container.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Config file (default ~/.passgen/config.yaml or $PASSGEN_CONFIG)")
	root.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "Enable verbose logging")
	root.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed the random source for reproducible output")
	_ = root.PersistentFlags().MarkHidden("seed")
	bindGenerateFlags(root, rootGen)

	root.AddCommand(
		newGenerateCommand(container),
		newInteractiveCommand(container),
		commands.NewHistoryCommand(container),
		commands.NewConfigCommand(container),
		commands.NewDoctorCommand(container),
		commands.NewVersionCommand(),
	)
	return root, nil
}

func loadContainer(cmd *cobra.Command, container *app.Container, opts Options) error {
	if container.Session != nil {
		return nil
	}
	built, err := app.BuildContainer(cmd.Context(), app.Options{
		ConfigPath: opts.ConfigPath,
		Verbose:    opts.Verbose,
		Random:     opts.Random,
		Lenient:    opts.LenientConfig,
	})
	if err != nil {
		return err
	}
	*container = *built

	duration, err := configapp.BadgeDuration(container.Config.Clipboard)
	if err != nil && !opts.LenientConfig {
		return err
	}
	container.AttachClipboard(
		NewClipboard(container.Config.Clipboard.Enabled),
		NewCopyBadge(cmd.ErrOrStderr(), duration),
	)
	return nil
}

// annotated reports whether cmd or one of its parents carries the annotation.
func annotated(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

func newGenerateCommand(container *app.Container) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate a password",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, container, opts)
		},
	}
	bindGenerateFlags(cmd, opts)
	return cmd
}

func bindGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().IntVarP(&opts.length, "length", "l", domain.DefaultLength, "Password length (default from config)")
	cmd.Flags().IntVarP(&opts.tier, "tier", "t", int(domain.DefaultTier), "Security tier 1-5 (default from config)")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the password to the clipboard")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record the password in history")
}

func runGenerate(cmd *cobra.Command, container *app.Container, opts *generateOptions) error {
	s := container.Session
	if s == nil {
		return commands.ErrSessionUnavailable
	}
	if cmd.Flags().Changed("length") {
		s.Length = opts.length
	}
	if cmd.Flags().Changed("tier") {
		if err := s.SetTier(domain.Tier(opts.tier)); err != nil {
			return err
		}
	}
	if opts.copy {
		s.CopyOnGenerate = true
	}
	if opts.noHistory {
		s.RecordHistory = false
	}

	result, err := s.Submit(cmd.Context())
	if err != nil {
		return err
	}
	RenderResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), result)
	return nil
}

func newInteractiveCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Edit length and tier at a prompt and generate repeatedly",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.Session == nil {
				return commands.ErrSessionUnavailable
			}
			loop := NewInteractive(container.Session, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			return loop.Run(cmd.Context())
		},
	}
}
