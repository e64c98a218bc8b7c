package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"pokedex-insights-go/internal/charts"
	"pokedex-insights-go/internal/dashboard"
	"pokedex-insights-go/internal/dataset"
	"pokedex-insights-go/internal/detail"
	"pokedex-insights-go/internal/filter"
)

var (
	listSearch string
	listType   string
	exportOut  string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print summary cards, facts, insights and chart series",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		v, err := svc.View(filter.Criteria{})
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), v)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Pokémon, optionally filtered by name and type",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		items, err := svc.List(filter.Criteria{Search: listSearch, Type: listType})
		if err != nil {
			return err
		}
		printList(cmd.OutOrStdout(), items)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show the details of one Pokémon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		d, err := svc.Detail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printDetail(cmd.OutOrStdout(), d)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the records and their statistics to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOut == "" {
			return fmt.Errorf("--out is required")
		}
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		records, err := svc.Records()
		if err != nil {
			return err
		}
		if err := dataset.ExportFile(exportOut, records); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d Pokémon to %s\n", len(records), exportOut)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "case-insensitive name substring")
	listCmd.Flags().StringVar(&listType, "type", filter.TypeAll, "type to keep, or \"all\"")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output workbook path")

	rootCmd.AddCommand(summaryCmd, listCmd, showCmd, exportCmd)
}

func printSummary(w io.Writer, v dashboard.View) {
	for _, c := range v.Summary {
		fmt.Fprintf(w, "%s %s: %s\n", c.Icon, c.Title, c.Value)
	}
	for _, card := range v.Facts {
		fmt.Fprintf(w, "\n%s\n", card.Title)
		for _, l := range card.Lines {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	if len(v.Insights) > 0 {
		fmt.Fprintln(w, "\nData Highlights")
		for _, l := range v.Insights {
			fmt.Fprintf(w, "  %s\n", l)
		}
	}
	printSeries(w, v.Charts)
}

func printSeries(w io.Writer, s charts.Series) {
	fmt.Fprintln(w, "\nType Distribution")
	for i, label := range s.Types.Labels {
		fmt.Fprintf(w, "  %-10s %3d (%d%%)\n", label, s.Types.Values[i], s.Types.Percent[i])
	}
	fmt.Fprintln(w, "\nAverage Base Stats")
	for i, label := range s.Stats.Labels {
		fmt.Fprintf(w, "  %-8s %3d %s\n", label, s.Stats.Values[i], strings.Repeat("█", s.Stats.Values[i]/5))
	}
}

func printList(w io.Writer, items []dashboard.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(no Pokémon match)")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "#%-4d %-12s %-16s %6s %8s\n", it.ID, it.Name, strings.Join(it.Types, "/"), it.Height, it.Weight)
	}
}

func printDetail(w io.Writer, d detail.View) {
	fmt.Fprintf(w, "%s (#%d) [%s]\n", d.DisplayName, d.ID, strings.Join(d.Types, ", "))
	fmt.Fprintf(w, "Height: %s  Weight: %s  Base XP: %s\n", d.Height, d.Weight, d.BaseExperience)
	fmt.Fprintln(w, "\nBase Stats")
	for _, s := range d.Stats {
		fmt.Fprintf(w, "  %-8s %3d %s\n", s.Label, s.Value, strings.Repeat("█", int(s.WidthPercent/5)))
	}
	if len(d.Abilities) > 0 {
		fmt.Fprintln(w, "\nAbilities")
		for _, a := range d.Abilities {
			if a.Hidden {
				fmt.Fprintf(w, "  %s (Hidden)\n", a.Name)
				continue
			}
			fmt.Fprintf(w, "  %s\n", a.Name)
		}
	}
	if len(d.Moves) > 0 {
		fmt.Fprintf(w, "\nMoves\n  %s\n", strings.Join(d.Moves, ", "))
		if d.MoreMoves > 0 {
			fmt.Fprintf(w, "  +%d more moves\n", d.MoreMoves)
		}
	}
}
