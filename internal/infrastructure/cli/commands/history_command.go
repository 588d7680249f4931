package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doeshing/passgen-go/internal/app"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/cli/helpers"
	"github.com/doeshing/passgen-go/internal/ports"
)

const (
	msgNoHistoryRecorded = "No passwords recorded yet."
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect password history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, 0)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryClearCommand(container),
		newHistoryCopyCommand(container),
		newHistoryExportCommand(container),
		newHistoryPathCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List generated passwords, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show only the newest N entries (0 = all)")
	return cmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear password history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && helpers.IsTerminal(cmd.InOrStdin()) {
				reader := bufio.NewReader(cmd.InOrStdin())
				if !helpers.PromptForConfirmation(cmd.OutOrStdout(), reader, "Clear all saved passwords?") {
					fmt.Fprintln(cmd.OutOrStdout(), MsgClearCancelled)
					return nil
				}
			}
			return clearHistory(cmd.Context(), cmd.OutOrStdout(), container)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// newHistoryCopyCommand creates the 'history copy' subcommand
func newHistoryCopyCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "copy [n]",
		Short: "Copy history entry n (as numbered by list, default newest) to the clipboard",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return copyNewestEntry(cmd.Context(), cmd.OutOrStdout(), container)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("entry must be a number, got %q", args[0])
			}
			return copyHistoryEntry(cmd.Context(), cmd.OutOrStdout(), container, n)
		},
	}
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export history as a JSON array (use - for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportHistory(cmd.Context(), cmd.OutOrStdout(), container, args[0])
		},
	}
}

// newHistoryPathCommand creates the 'history path' subcommand
func newHistoryPathCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where history is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistoryLocation(cmd.OutOrStdout(), container)
		},
	}
}

// listHistoryEntries prints the stored passwords numbered from 1
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	list, err := loadHistory(ctx, container)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(out, msgNoHistoryRecorded)
		return nil
	}

	start := 0
	if limit > 0 && len(list) > limit {
		start = len(list) - limit
	}
	width := len(strconv.Itoa(len(list)))
	for i := start; i < len(list); i++ {
		fmt.Fprintf(out, "%*d  %s\n", width, i+1, list[i])
	}
	printDegraded(out, container)
	return nil
}

// clearHistory empties the stored list
func clearHistory(ctx context.Context, out io.Writer, container *app.Container) error {
	if container.Session == nil {
		return ErrSessionUnavailable
	}
	if err := container.Session.ClearHistory(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, MsgHistoryCleared)
	printDegraded(out, container)
	return nil
}

// copyHistoryEntry copies the n-th (1-based) entry
func copyHistoryEntry(ctx context.Context, out io.Writer, container *app.Container, n int) error {
	if container.Session == nil {
		return ErrSessionUnavailable
	}
	if _, err := container.Session.CopyHistory(ctx, n-1); err != nil {
		return err
	}
	fmt.Fprintf(out, "Copied entry %d to clipboard\n", n)
	return nil
}

// copyNewestEntry copies the most recently generated password
func copyNewestEntry(ctx context.Context, out io.Writer, container *app.Container) error {
	list, err := loadHistory(ctx, container)
	if err != nil {
		return err
	}
	if _, ok := list.Last(); !ok {
		return fmt.Errorf("%w: history is empty", domain.ErrHistoryIndex)
	}
	return copyHistoryEntry(ctx, out, container, len(list))
}

// exportHistory writes the list as indented JSON
func exportHistory(ctx context.Context, out io.Writer, container *app.Container, dest string) error {
	list, err := loadHistory(ctx, container)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	data = append(data, '\n')

	if dest == ExportStdout {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(dest, data, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintf(out, "Exported %d passwords to %s (%s)\n", len(list), dest, humanize.Bytes(uint64(len(data))))
	return nil
}

// showHistoryLocation prints the backend and location of the history store
func showHistoryLocation(out io.Writer, container *app.Container) error {
	described, ok := container.Store.(ports.DescribedStore)
	if !ok {
		return ErrHistoryUnavailable
	}
	location := described.Location()
	if info, err := os.Stat(location); err == nil && !info.IsDir() {
		fmt.Fprintf(out, "%s\t%s\t%s\n", described.Backend(), location, humanize.Bytes(uint64(info.Size())))
	} else {
		fmt.Fprintf(out, "%s\t%s\n", described.Backend(), location)
	}
	printDegraded(out, container)
	return nil
}

func loadHistory(ctx context.Context, container *app.Container) (domain.HistoryList, error) {
	if container.Session == nil {
		return nil, ErrHistoryUnavailable
	}
	return container.Session.ListHistory(ctx)
}

func printDegraded(out io.Writer, container *app.Container) {
	if container.Session != nil {
		helpers.PrintWarnings(out, container.Session.Warnings())
	}
}
