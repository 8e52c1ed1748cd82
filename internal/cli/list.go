package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"equipment-tracker/internal/listview"
	"equipment-tracker/internal/model"
)

var columns = []struct {
	key   listview.SortKey
	title string
}{
	{listview.SortID, "ID"},
	{listview.SortName, "Name"},
	{listview.SortType, "Type"},
	{listview.SortStatus, "Status"},
	{listview.SortLastCleaned, "Last Cleaned"},
}

func newListCommand(opts *options) *cobra.Command {
	var (
		search string
		sortBy string
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List equipment, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view := listview.NewView()
			view.Search = search
			if sortBy != "" {
				key, err := listview.ParseSortKey(sortBy)
				if err != nil {
					return err
				}
				view.Sort = listview.SortSpec{Key: key, Direction: listview.Asc}
			}
			if desc {
				view.Sort.Direction = listview.Desc
			}

			c := opts.container()
			if err := c.Load(commandContext(cmd)); err != nil {
				banner(cmd.ErrOrStderr(), c)
				return err
			}
			return printTable(cmd.OutOrStdout(), view, view.Project(c.Snapshot().Items))
		},
	}

	cmd.Flags().StringVarP(&search, "search", "q", "", "case-insensitive match on name, type or status")
	cmd.Flags().StringVar(&sortBy, "sort", "", "column to sort by (id, name, type, status, last_cleaned, created_at, updated_at)")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	return cmd
}

func printTable(out io.Writer, view *listview.View, items []model.Equipment) error {
	if len(items) == 0 {
		msg := "No equipment available"
		if view.Search != "" {
			msg = "No matching equipment found"
		}
		_, err := fmt.Fprintln(out, msg)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, col := range columns {
		sep := "\t"
		if i == len(columns)-1 {
			sep = "\n"
		}
		fmt.Fprintf(tw, "%s%s%s", col.title, view.Indicator(col.key), sep)
	}
	for _, item := range items {
		lastCleaned := "-"
		if item.LastCleaned != nil {
			lastCleaned = item.LastCleaned.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", item.ID, item.Name, item.Type, item.Status, lastCleaned)
	}
	return tw.Flush()
}
