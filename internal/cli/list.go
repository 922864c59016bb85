package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/config"
	"github.com/rshade/svccat/internal/controller"
	"github.com/rshade/svccat/internal/tui"
)

// Output formats accepted by --output.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// tabwriterPadding is the minimum padding between columns in the table output.
const tabwriterPadding = 2

// ListResult is the structured form of one page, used for JSON and YAML output.
type ListResult struct {
	Search         string                  `json:"search"           yaml:"search"`
	Page           int                     `json:"page"             yaml:"page"`
	PageSize       int                     `json:"page_size"        yaml:"page_size"`
	TotalItems     int                     `json:"total_items"      yaml:"total_items"`
	TotalPages     int                     `json:"total_pages"      yaml:"total_pages"`
	FirstItemIndex int                     `json:"first_item_index" yaml:"first_item_index"`
	LastItemIndex  int                     `json:"last_item_index"  yaml:"last_item_index"`
	IsNext         bool                    `json:"is_next"          yaml:"is_next"`
	IsPrevious     bool                    `json:"is_previous"      yaml:"is_previous"`
	Services       []catalog.ServiceRecord `json:"services"         yaml:"services"`
}

// NewListResult flattens a controller state.
func NewListResult(s controller.State) ListResult {
	set := s.Services
	return ListResult{
		Search:         s.Query.Search,
		Page:           set.CurrentPage,
		PageSize:       set.PageSize,
		TotalItems:     set.TotalItems,
		TotalPages:     set.TotalPages(),
		FirstItemIndex: set.FirstItemIndex,
		LastItemIndex:  set.LastItemIndex,
		IsNext:         set.IsNext,
		IsPrevious:     set.IsPrevious,
		Services:       set.PageItems,
	}
}

// NewListCmd creates the list command, which runs one refresh cycle and prints the page.
func NewListCmd() *cobra.Command {
	var (
		flags  pageFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of services",
		Long: `Fetches the services matching --search, sorts them by name and prints the
requested page with its range and navigation metadata.`,
		Example: `  # First page as a table
  svccat list

  # Third page of ten, as YAML
  svccat list --page 3 --page-size 10 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			format := output
			if format == "" {
				format = cfg.Output.DefaultFormat
			}
			if !slices.Contains(config.OutputFormats, format) {
				return fmt.Errorf("unsupported output format: %s", format)
			}

			inputs, err := flags.inputs(cfg)
			if err != nil {
				return err
			}

			ctrl := newController(cmd, cfg, inputs)
			if err = ctrl.Refresh(cmd.Context()); err != nil {
				return &ExitError{Code: ExitCatalogError, Err: err}
			}

			return RenderList(cmd.OutOrStdout(), format, ctrl.State())
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: table, json or yaml (default from config)")

	return cmd
}

// RenderList writes the page in the given format.
func RenderList(w io.Writer, format string, s controller.State) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewListResult(s)); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd // YAML indent width.
		if err := enc.Encode(NewListResult(s)); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case OutputTable:
		return renderTable(w, s, tui.DetectOutputMode(false, false, false) == tui.OutputModePlain)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderTable writes an aligned table followed by the range footer.
func renderTable(w io.Writer, s controller.State, plain bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	headers := lo.Map(tui.Columns, func(c string, _ int) string { return strings.ToUpper(c) })
	separators := lo.Map(headers, func(h string, _ int) string { return strings.Repeat("-", len(h)) })

	lines := [][]string{headers, separators}
	lines = append(lines, lo.Map(s.Services.PageItems, func(r catalog.ServiceRecord, _ int) []string {
		return tui.Row(r)
	})...)

	for _, cells := range lines {
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("writing table: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	footer := tui.FormatRange(s.Services)
	if page := tui.FormatPage(s.Services); page != "" {
		footer += " | " + page
	}
	if !plain {
		footer = tui.InfoStyle.Render(footer)
	}
	_, err := fmt.Fprintf(w, "\n%s\n", footer)
	return err
}
