package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	"github.com/kailas-cloud/helpboard/internal/metrics"
	"github.com/kailas-cloud/helpboard/internal/repository/seed"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
	"github.com/kailas-cloud/helpboard/internal/version"
)

const defaultSeed = "data/seed.jsonc"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "helpboardctl",
		Short:         "Query a helpboard dataset from the command line",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSearchCmd(), newCategoriesCmd(), newValidateCmd())
	return root
}

type searchOptions struct {
	seedPath     string
	collection   string
	category     string
	kind         string
	urgency      string
	status       string
	hidePersonal bool
	hideBusiness bool
	lat, lng     float64
	radiusKm     float64
	sort         string
	limit        int
	asJSON       bool
}

func newSearchCmd() *cobra.Command {
	var o searchOptions
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search a collection of the seed dataset",
		Long: heredoc.Doc(`
			Runs the discovery engine over one collection of a seed file and
			prints the matching listings followed by the facet counts.

			Facets left unset match everything. A radius enables the proximity
			filter around --lat/--lng.
		`),
		Example: heredoc.Doc(`
			helpboardctl search rice
			helpboardctl search --collection helpers --category Mechanics
			helpboardctl search --urgency high --lat -18.88 --lng 47.51 --radius 25
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return runSearch(cmd.Context(), cmd.OutOrStdout(), term, &o)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.seedPath, "seed", defaultSeed, "seed file (JSONC)")
	f.StringVarP(&o.collection, "collection", "c", "posts", "collection: posts, community or helpers")
	f.StringVar(&o.category, "category", "", "category filter")
	f.StringVar(&o.kind, "type", "", "type filter")
	f.StringVar(&o.urgency, "urgency", "", "urgency filter")
	f.StringVar(&o.status, "status", "", "status filter")
	f.BoolVar(&o.hidePersonal, "hide-personal", false, "hide personal accounts")
	f.BoolVar(&o.hideBusiness, "hide-business", false, "hide company accounts")
	f.Float64Var(&o.lat, "lat", geo.DefaultCenter.Lat, "latitude of the proximity center")
	f.Float64Var(&o.lng, "lng", geo.DefaultCenter.Lon, "longitude of the proximity center")
	f.Float64Var(&o.radiusKm, "radius", 0, "proximity radius in km (0 disables)")
	f.StringVar(&o.sort, "sort", "", "pre-sort: none, newest or featured")
	f.IntVarP(&o.limit, "limit", "n", discoveryuc.DefaultLimit, "maximum items to print")
	f.BoolVar(&o.asJSON, "json", false, "print JSON")
	return cmd
}

func runSearch(ctx context.Context, out io.Writer, term string, o *searchOptions) error {
	ds, err := seed.LoadFile(o.seedPath)
	if err != nil {
		return err
	}
	metrics.RegisterDiscoveryMetrics()
	svc := discoveryuc.New(seed.NewStatic(ds), nil, discoveryuc.Config{})

	showPersonal, showBusiness := !o.hidePersonal, !o.hideBusiness
	p := query.Params{
		Term: term, Category: o.category, Type: o.kind, Urgency: o.urgency, Status: o.status,
		ShowPersonal: &showPersonal, ShowBusiness: &showBusiness,
	}
	if o.radiusKm != 0 {
		p.Bound = geo.Circle{Center: geo.Point{Lat: o.lat, Lon: o.lng}, RadiusKm: o.radiusKm}
	}

	page, err := svc.Search(ctx, o.collection, query.New(p), discoveryuc.Options{
		Sort: discoveryuc.Sort(o.sort), Limit: o.limit,
	})
	if err != nil {
		return err
	}
	if o.asJSON {
		return writeJSON(out, &page)
	}
	return writeTable(out, &page)
}

type jsonItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type"`
	Urgency  string `json:"urgency,omitempty"`
	Status   string `json:"status,omitempty"`
}

func writeJSON(out io.Writer, page *discoveryuc.Page) error {
	items := make([]jsonItem, len(page.Items))
	for i := range page.Items {
		l := &page.Items[i]
		items[i] = jsonItem{
			ID: l.ID(), Title: l.Title(), Category: string(l.Category()),
			Type: string(l.Kind()), Urgency: string(l.Urgency()), Status: string(l.Status()),
		}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	//nolint:wrapcheck // writer error
	return enc.Encode(map[string]any{
		"items":  items,
		"total":  page.Total,
		"facets": page.Counts,
	})
}

func writeTable(out io.Writer, page *discoveryuc.Page) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tCATEGORY\tURGENCY\tSTATUS\tTITLE")
	for i := range page.Items {
		l := &page.Items[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID(), l.Kind(), dash(string(l.Category())), dash(string(l.Urgency())), dash(string(l.Status())), l.Title())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	fmt.Fprintf(out, "\n%d matching\n", page.Total)
	for _, f := range facet.Facets() {
		counts := page.Counts[f]
		if len(counts) == 0 {
			continue
		}
		parts := make([]string, 0, len(counts))
		for v, n := range counts {
			parts = append(parts, fmt.Sprintf("%s=%d", v, n))
		}
		slices.Sort(parts)
		fmt.Fprintf(out, "%s: %s\n", f, strings.Join(parts, " "))
	}
	return nil
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the category enumeration with UI translation keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tKEY")
			for _, c := range listing.Categories() {
				fmt.Fprintf(tw, "%s\t%s\n", c, c.TranslationKey())
			}
			return tw.Flush() //nolint:wrapcheck // writer error
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [seed-file]",
		Short: "Check a seed file and report every invalid record",
		Example: heredoc.Doc(`
			helpboardctl validate
			helpboardctl validate /etc/helpboard/seed.jsonc
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSeed
			if len(args) == 1 {
				path = args[0]
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read seed: %w", err)
			}
			ds, err := seed.Parse(data)
			if err != nil {
				for _, e := range multierr.Errors(err) {
					fmt.Fprintln(cmd.ErrOrStderr(), e)
				}
				return fmt.Errorf("%s is invalid", path)
			}
			out := cmd.OutOrStdout()
			for _, col := range collection.Names() {
				fmt.Fprintf(out, "%s: %d listings\n", col, len(ds[col]))
			}
			return nil
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
