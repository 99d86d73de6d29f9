package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/duplicates"
	"github.com/ChaseHampton/goobituaries/internal/page"
	"github.com/ChaseHampton/goobituaries/internal/search"
	"github.com/ChaseHampton/goobituaries/internal/view"
	"github.com/spf13/cobra"
)

var (
	listCity      string
	listText      string
	listExactCity bool
	listPage      int
	listPerPage   int
)

var obituariesCmd = &cobra.Command{
	Use:     "obituaries",
	Aliases: []string{"necrologi"},
	Short:   "Inspect the merged obituary collection",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List obituaries, optionally filtered by city and text",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(cmd.Context(), func(a *app) error {
			p := search.Params{City: listCity, Text: listText}
			if listExactCity {
				p.CityMatch = search.CityExact
			}
			results := page.Paginate(a.engine.Search(p), listPage, listPerPage)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCITY\tDEATH\tFUNERAL")
			for i := range results.Items {
				o := &results.Items[i]
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\n", o.ID, o.Name, o.City,
					view.FormatDate(o.DeathDate), view.FormatDate(o.FuneralDate), o.FuneralTime)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d, %d obituaries\n", results.Number, results.TotalPages, results.TotalItems)
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one obituary as the detail page sees it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(cmd.Context(), func(a *app) error {
			o, ok := a.engine.GetByID(args[0])
			if !ok {
				return fmt.Errorf("obituary %q not found", args[0])
			}
			detail := view.NewDetail(&o, a.engine.Condolences(cmd.Context(), o.ID), a.cfg.SiteName)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(detail)
		})
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Report obituaries that appear in more than one source",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLoadedApp(cmd.Context(), func(a *app) error {
			groups := duplicates.Find(a.engine.GetAll())
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no duplicates")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", g.Key, g.IDs)
			}
			return nil
		})
	},
}

func withLoadedApp(parent context.Context, fn func(a *app) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		a.close(closeCtx)
	}()

	a.startProbe(ctx)
	a.engine.LoadAll(ctx)
	return fn(a)
}

func init() {
	listCmd.Flags().StringVar(&listCity, "city", "", "filter by city")
	listCmd.Flags().StringVarP(&listText, "query", "q", "", "filter by name or text")
	listCmd.Flags().BoolVar(&listExactCity, "exact-city", false, "match the city exactly instead of by substring")
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listPerPage, "per-page", page.DefaultPerPage, "obituaries per page")

	obituariesCmd.AddCommand(listCmd, showCmd, duplicatesCmd)
	rootCmd.AddCommand(obituariesCmd)
}
