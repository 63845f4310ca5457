package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/linkcheck/internal/app"
	"github.com/five82/linkcheck/internal/linkcheck"
	"github.com/five82/linkcheck/internal/submit"
	"github.com/five82/linkcheck/internal/table"
)

// ErrBrokenLinks is returned by check --fail-on-broken when the result set
// contains a broken link.
var ErrBrokenLinks = errors.New("broken links found")

type checkOptions struct {
	depth        int
	sort         string
	desc         bool
	filterStatus []string
	filterCode   []string
	filterURL    string
	filterParent string
	pageSize     int
	page         int
	json         bool
	failOnBroken bool
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Check a site once and print the results",
		Long: `check submits one URL to the backend, applies the same filters, sort and
pagination as the interactive table, and prints the page as a table or JSON.`,
		Example: `  linkcheck check https://example.com
  linkcheck check https://example.com --depth 2 --filter-status broken
  linkcheck check https://example.com --sort response_time --desc --page-size 20
  linkcheck check https://example.com --json --fail-on-broken`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, root, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.depth, "depth", "d", submit.DefaultDepth, "crawl depth (0-4)")
	flags.StringVar(&opts.sort, "sort", "", "sort column: url, parent_url, status, status_code, response_time (default status)")
	flags.BoolVar(&opts.desc, "desc", false, "sort descending")
	flags.StringSliceVar(&opts.filterStatus, "filter-status", nil, "keep links with these statuses: working, broken")
	flags.StringSliceVar(&opts.filterCode, "filter-code", nil, "keep links with these status codes")
	flags.StringVar(&opts.filterURL, "filter-url", "", "keep links whose URL contains this text")
	flags.StringVar(&opts.filterParent, "filter-parent", "", "keep links whose parent URL contains this text")
	flags.IntVar(&opts.pageSize, "page-size", 0, "rows per page: 10, 20, 30, 40 or 50 (default from config)")
	flags.IntVar(&opts.page, "page", 1, "page number, starting at 1")
	flags.BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	flags.BoolVar(&opts.failOnBroken, "fail-on-broken", false, "exit non-zero when any link is broken")

	return cmd
}

func runCheck(cmd *cobra.Command, root *rootOptions, opts *checkOptions, rawURL string) error {
	env, err := app.Setup(app.Options{ConfigPath: root.configPath, Verbose: root.verbose})
	if err != nil {
		return err
	}
	defer env.Close()

	if opts.pageSize == 0 {
		opts.pageSize = env.Config.PageSize
	}
	filters, sorting, page, err := opts.viewQuery()
	if err != nil {
		return err
	}

	results, err := env.Controller.Submit(cmd.Context(), submit.Values(rawURL, opts.depth))
	if err != nil {
		return err
	}

	view := table.ComputeView(results, filters, sorting, page)
	report := newReport(rawURL, opts.depth, results, view, table.JoinAddress("/", table.EncodeQuery(filters, sorting)))

	out := cmd.OutOrStdout()
	if opts.json {
		err = writeJSON(out, report)
	} else {
		writeTable(out, report)
	}
	if err != nil {
		return err
	}

	if opts.failOnBroken && report.Broken > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBrokenLinks, report.Broken, report.Total)
	}
	return nil
}

// viewQuery turns the flags into the table engine's filter, sort and page
// inputs.
func (o *checkOptions) viewQuery() (table.FilterSpec, []table.SortEntry, table.PageState, error) {
	var filters table.FilterSpec

	if o.filterURL != "" {
		filters.Set(table.IDURL, table.TextFilter(o.filterURL))
	}
	if o.filterParent != "" {
		filters.Set(table.IDParentURL, table.TextFilter(o.filterParent))
	}
	if statuses := normalizeValues(o.filterStatus); len(statuses) > 0 {
		for _, s := range statuses {
			if s != table.StatusWorking && s != table.StatusBroken {
				return filters, nil, table.PageState{}, fmt.Errorf("invalid --filter-status %q: want working or broken", s)
			}
		}
		filters.Set(table.IDIsWorking, table.SetFilter(statuses...))
	}
	if codes := normalizeValues(o.filterCode); len(codes) > 0 {
		filters.Set(table.IDStatusCode, table.SetFilter(codes...))
	}

	sorting := []table.SortEntry{{ID: table.IDIsWorking, Desc: o.desc}}
	if o.sort != "" {
		col := table.Column(o.sort)
		if !col.Valid() {
			return filters, nil, table.PageState{}, fmt.Errorf("invalid --sort %q", o.sort)
		}
		sorting = []table.SortEntry{{ID: col.ID(), Desc: o.desc}}
	}

	if !table.ValidPageSize(o.pageSize) {
		return filters, nil, table.PageState{}, fmt.Errorf("invalid --page-size %d: want one of %v", o.pageSize, table.PageSizes)
	}
	if o.page < 1 {
		return filters, nil, table.PageState{}, fmt.Errorf("invalid --page %d: pages start at 1", o.page)
	}

	return filters, sorting, table.PageState{Index: o.page - 1, Size: o.pageSize}, nil
}

// normalizeValues lowercases, trims and dedupes flag values, keeping order.
func normalizeValues(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// report is what check prints.
type report struct {
	URL       string      `json:"url"`
	Depth     int         `json:"depth"`
	Total     int         `json:"total"`
	Broken    int         `json:"broken"`
	Filtered  int         `json:"filtered"`
	Page      int         `json:"page"`
	PageCount int         `json:"page_count"`
	PageSize  int         `json:"page_size"`
	View      string      `json:"view"`
	Rows      []reportRow `json:"rows"`
}

type reportRow struct {
	linkcheck.LinkResult
	FormattedResponseTime string  `json:"formatted_response_time"`
	ResponseTimeMS        float64 `json:"response_time_ms"`
}

func newReport(rawURL string, depth int, results []linkcheck.LinkResult, view table.View, address string) report {
	r := report{
		URL:       strings.TrimSpace(rawURL),
		Depth:     depth,
		Total:     len(results),
		Filtered:  view.TotalFiltered,
		Page:      view.PageIndex + 1,
		PageCount: view.PageCount,
		PageSize:  view.PageSize,
		View:      address,
		Rows:      make([]reportRow, 0, len(view.Rows)),
	}
	for _, res := range results {
		if !res.IsWorking {
			r.Broken++
		}
	}
	for _, row := range view.Rows {
		r.Rows = append(r.Rows, reportRow{
			LinkResult:            row.LinkResult,
			FormattedResponseTime: row.FormattedResponseTime,
			ResponseTimeMS:        row.ResponseTimeMS,
		})
	}
	return r
}
