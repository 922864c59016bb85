package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/svccat/internal/router"
	"github.com/rshade/svccat/internal/tui"
)

// NewBrowseCmd creates the interactive browse command. When stdout is not an
// interactive terminal it prints the first page like list does.
func NewBrowseCmd() *cobra.Command {
	var flags pageFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Opens a terminal view of the catalog. Typing in the search box refreshes the
list after a short pause; n/p or PgDn/PgUp change page; r retries after an error.`,
		Example: `  svccat browse
  svccat browse --search pay --page-size 20`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := ConfigFromContext(cmd.Context())
			inputs, err := flags.inputs(cfg)
			if err != nil {
				return err
			}
			ctrl := newController(cmd, cfg, inputs)

			mode := tui.DetectOutputMode(false, false, false)
			if mode != tui.OutputModeInteractive {
				logger.Debug().Str("mode", mode.String()).Msg("not a terminal, printing one page")
				if err = ctrl.Refresh(cmd.Context()); err != nil {
					return &ExitError{Code: ExitCatalogError, Err: err}
				}
				return RenderList(cmd.OutOrStdout(), OutputTable, ctrl.State())
			}

			return runBrowser(cmd.Context(), ctrl)
		},
	}

	flags.register(cmd)
	return cmd
}

// browserController is what the interactive browser needs from the controller.
type browserController interface {
	tui.Controller
	tui.Subscriber
	Start(ctx context.Context) error
	Close() error
}

// runBrowser starts ctrl and runs the home route until the user quits.
func runBrowser(ctx context.Context, ctrl browserController) error {
	routes, err := tui.NewRouter()
	if err != nil {
		return fmt.Errorf("building routes: %w", err)
	}
	home, err := routes.ByName(router.Home)
	if err != nil {
		return err
	}

	// Subscribe before starting so the first publication is not missed.
	bridge := tui.NewBridge(ctrl)
	defer bridge.Close()

	if err = ctrl.Start(ctx); err != nil {
		return fmt.Errorf("starting controller: %w", err)
	}
	defer func() { _ = ctrl.Close() }()

	p := tea.NewProgram(home.View(ctx, ctrl, bridge), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
