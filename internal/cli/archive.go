package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/kochwerk/kochwerk/pkg/archive"
	"github.com/kochwerk/kochwerk/pkg/errors"
	"github.com/kochwerk/kochwerk/pkg/figure"
)

// archiveCommand creates the archive command group for persisting and
// retrieving figures.
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Save and retrieve figures from MongoDB",
		Long: `Save and retrieve figures from MongoDB.

Archived figures keep their full vertex data, so any entry can be
re-fitted and re-rendered without regenerating it. The archive requires
a MongoDB URI in the [archive] section of the config file.`,
	}

	cmd.AddCommand(c.archiveSaveCommand())
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveShowCommand())
	cmd.AddCommand(c.archiveDeleteCommand())

	return cmd
}

// requireArchiveStore opens the configured MongoDB store. The in-process
// fallback the server uses makes no sense for a short-lived CLI process,
// so a missing URI is an error here.
func (c *CLI) requireArchiveStore(ctx context.Context) (archive.Store, error) {
	if c.cfg().Archive.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"archive commands need MongoDB; set uri in the [archive] section of the config file")
	}
	return c.newArchiveStore(ctx)
}

func (c *CLI) archiveSaveCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "save [figure.json]",
		Short: "Archive a generated figure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := figure.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("load figure: %w", err)
			}

			store, err := c.requireArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			e := archive.NewEntry(name, f)
			if err := store.Put(ctx, e); err != nil {
				return fmt.Errorf("archive figure: %w", err)
			}

			printSuccess("Figure archived")
			printKeyValue("ID", e.ID)
			printKeyValue("Level", strconv.Itoa(e.Figure.Level))
			printKeyValue("Map", e.Figure.Map)
			printNextStep("Retrieve", "kochwerk archive show "+e.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "human-readable entry name")

	return cmd
}

func (c *CLI) archiveListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived figures, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.requireArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			entries, err := store.List(ctx, limit)
			if err != nil {
				return fmt.Errorf("list archive: %w", err)
			}
			if len(entries) == 0 {
				printDetail("Archive is empty")
				return nil
			}

			printArchiveTable(entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum entries to list (0 for all)")

	return cmd
}

// printArchiveTable renders archive entries as a bordered table.
func printArchiveTable(entries []archive.Entry) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "—"
		}
		rows = append(rows, []string{
			shortID(e.ID),
			name,
			strconv.Itoa(e.Figure.Level),
			e.Figure.Map,
			formatRelativeTime(e.CreatedAt),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Level", "Map", "Created").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
		})

	fmt.Println(t)
	printDetail("%d entries · use the full ID with show/delete", len(entries))
}

// shortID abbreviates a UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (c *CLI) archiveShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print an archived figure as JSON",
		Long: `Print an archived figure as JSON.

The output is a complete figure file, so it pipes straight back into
the pipeline:

  kochwerk archive show <id> > figure.json && kochwerk fit figure.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.requireArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			e, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}

			out, err := openOutput(output)
			if err != nil {
				return fmt.Errorf("open output: %w", err)
			}
			defer out.Close()

			return figure.WriteJSON(e.Figure, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) archiveDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an archived figure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.requireArchiveStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}

			printSuccess("Entry deleted")
			return nil
		},
	}
}
