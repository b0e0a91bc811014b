package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
)

var (
	listPage   int
	listStatus string
	listSearch string
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the resources the current role may manage",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, t := range board.Tables() {
			fmt.Printf("%-14s %-11s %s\n", t.Name(), t.Department(), t.Strategy())
		}

		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list <resource>",
	Short: "Show one page of a resource",
	Long: `List loads a page of a resource, optionally filtered by status and by a
search term matched case-insensitively against the visible fields.

Example:
  deskctl list employees
  deskctl list tickets --status open --page 2
  deskctl list transactions --search cash --json`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "page to show")
	listCmd.Flags().StringVar(&listStatus, "status", "", "status filter")
	listCmd.Flags().StringVar(&listSearch, "search", "", "search term")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)

	t, err := table(args[0])
	if err != nil {
		return err
	}

	switch {
	case listStatus != "":
		t.ChangeStatusFilter(ctx, listStatus)
	default:
		t.Refresh(ctx)
	}

	if listSearch != "" {
		t.Search(ctx, listSearch, false)
	}

	if listPage > 1 && !t.GoToPage(ctx, listPage) {
		return fmt.Errorf("page %d is out of range (1-%d)", listPage, max(t.View().Pages, 1))
	}

	v := t.View()
	if v.Error != "" {
		return fmt.Errorf("%s: %s", t.Name(), v.Error)
	}

	if jsonOutput {
		return printJSON(v)
	}

	printTable(t.Columns(), v)

	return nil
}

func printTable(columns []dashboard.Column, v dashboard.View) {
	if v.Empty != "" {
		fmt.Println(v.Empty)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	header := []string{"ID"}
	for _, c := range columns {
		header = append(header, strings.ToUpper(c.Title))
	}

	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, row := range v.Rows {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, v.IDs[i])

		for j, cell := range row {
			if j < len(columns) {
				cell = truncate(cell, columns[j].Width)
			}

			cells = append(cells, cell)
		}

		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}

	_ = w.Flush()

	total := fmt.Sprintf("%d", v.Total)
	if v.Estimated {
		total = "~" + total
	}

	fmt.Printf("Page %d of %d, %s record(s)\n", v.Page, max(v.Pages, 1), total)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width < 4 || len(r) <= width {
		return s
	}

	return string(r[:width-3]) + "..."
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	fmt.Println(string(out))

	return nil
}
