package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pokedex-catalog/app"
	"pokedex-catalog/models"
	"pokedex-catalog/utils"
)

var (
	listSearch string
	listSort   string
	listType   string
	listPage   int
	outputJSON bool
)

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.NewServices(cfg, logger)
		if err != nil {
			return err
		}

		mode, err := models.ParseSortMode(listSort)
		if err != nil {
			return err
		}
		state := models.ViewState{
			SearchText:     listSearch,
			SortMode:       mode,
			CategoryFilter: listType,
			PageNumber:     listPage,
		}

		ctx := cmd.Context()
		stubs, err := svc.Catalog.LoadCatalog(ctx)
		if err != nil {
			return err
		}
		page, err := svc.Views.ComputePage(ctx, stubs, state)
		if err != nil {
			return err
		}

		if outputJSON {
			return printJSON(page)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, rec := range page.Records {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n",
				utils.FormatDexNumber(rec.SequenceIndex, 3), rec.Name, strings.Join(rec.Categories, "/"), rec.Weight)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Printf("Página %d de %d (%d coincidencias)\n", page.PageNumber, page.TotalPages, page.MatchCount)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print the detail view of one entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.NewServices(cfg, logger)
		if err != nil {
			return err
		}

		d, err := svc.Details.GetPokemonDetail(cmd.Context(), args[0], "")
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(d)
		}

		versions := make([]string, 0, len(d.Species.Versions))
		for _, v := range d.Species.Versions {
			versions = append(versions, utils.VersionLabel(v))
		}
		evolutions := make([]string, 0, len(d.Evolutions))
		for _, e := range d.Evolutions {
			evolutions = append(evolutions, e.Name)
		}

		fmt.Printf("%s %s\n", d.Name, utils.FormatDexNumber(d.ID, 4))
		if d.Species.FlavorText != "" {
			fmt.Println(d.Species.FlavorText)
		}
		fmt.Printf("Altura: %.1f m\n", float64(d.Height)/10)
		fmt.Printf("Peso: %.1f kg\n", float64(d.Weight)/10)
		fmt.Printf("Categoría: %s\n", d.Species.Genus)
		fmt.Printf("Género: %s\n", utils.GenderLabel(string(d.Species.Gender)))
		fmt.Printf("Tipo: %s\n", strings.Join(d.Categories, ", "))
		fmt.Printf("Debilidad: %s\n", strings.Join(d.Weaknesses, ", "))
		fmt.Printf("Versiones: %s\n", strings.Join(versions, ", "))
		for _, st := range d.Stats {
			fmt.Printf("  %-16s %3d\n", strings.ToUpper(st.Name), st.BaseStat)
		}
		fmt.Printf("Evoluciones: %s\n", strings.Join(evolutions, " → "))
		return nil
	},
}

var evolutionsCmd = &cobra.Command{
	Use:   "evolutions <name>",
	Short: "Print the evolution line of an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.NewServices(cfg, logger)
		if err != nil {
			return err
		}
		line, err := svc.Evolutions.ResolveEvolutionLine(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(line)
		}
		for i, stage := range line {
			fmt.Printf("%d. %s\n", i+1, stage.Name)
		}
		return nil
	},
}

var weaknessesCmd = &cobra.Command{
	Use:   "weaknesses <type>...",
	Short: "Print the combined weaknesses of one or more types",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := app.NewServices(cfg, logger)
		if err != nil {
			return err
		}
		weak, err := svc.Types.ResolveWeaknesses(cmd.Context(), utils.SplitList(strings.Join(args, ",")))
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(weak)
		}
		fmt.Println(strings.Join(weak, ", "))
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "case-insensitive name filter")
	listCmd.Flags().StringVar(&listSort, "sort", "index-asc", "index-asc, index-desc, alpha-asc or alpha-desc")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "restrict the page to one type")
	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")

	for _, c := range []*cobra.Command{listCmd, showCmd, evolutionsCmd, weaknessesCmd} {
		c.Flags().BoolVar(&outputJSON, "json", false, "print JSON instead of text")
	}
}
