package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mmcdole/logbook/internal/domain"
	"github.com/mmcdole/logbook/internal/library"
	"github.com/mmcdole/logbook/internal/render"
	"github.com/spf13/cobra"
)

var listCategory string

var listCmd = &cobra.Command{
	Use:   "list [term]",
	Short: "Print entries, optionally only those whose name contains term",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := wire()
		if err != nil {
			return err
		}
		defer a.Close()

		entries, err := a.commands.ListMedia(context.Background())
		if err != nil {
			if notice := domain.UserNotice(err); notice != "" {
				return fmt.Errorf("%s", notice)
			}
			return err
		}

		state := library.NewState(nil, logger)
		state.Load(entries)
		if len(args) == 1 {
			state.Search(args[0])
		}

		visible := state.Visible()
		if listCategory != "" {
			want := domain.ParseCategory(listCategory)
			var kept []domain.MediaEntry
			for _, e := range visible {
				if e.Category == want {
					kept = append(kept, e)
				}
			}
			visible = kept
		}

		out := cmd.OutOrStdout()
		if banner := state.SearchBanner(); banner != "" {
			fmt.Fprintln(out, banner)
		}
		if len(visible) == 0 {
			list := state.Display()
			msg := list.Placeholder()
			if msg == "" {
				// the type filter emptied a non-empty listing
				msg = render.MsgEmptyResults
			}
			fmt.Fprintln(out, msg)
			return nil
		}
		fmt.Fprintln(out, entryTable(visible))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "type", "t", "", "only show entries of this type")
}

func entryTable(entries []domain.MediaEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := "Incomplete"
		if e.Complete {
			status = "Completed"
		}
		rows = append(rows, []string{
			domain.FormatID(e.ID),
			e.Name,
			string(e.Category),
			progressCell(e),
			e.Score,
			status,
			e.Date,
			fmt.Sprintf("%d", len(e.Comments)),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "TYPE", "PROGRESS", "SCORE", "STATUS", "STARTED", "NOTES").
		Rows(rows...).
		String()
}

func progressCell(e domain.MediaEntry) string {
	var b strings.Builder
	b.WriteString(e.Progress)
	if e.TotalEpisodes != "" {
		b.WriteString("/" + e.TotalEpisodes)
	}
	return b.String()
}
