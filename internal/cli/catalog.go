package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/svccat/internal/config"
	"github.com/rshade/svccat/internal/controller"
	"github.com/rshade/svccat/internal/fetch"
	"github.com/rshade/svccat/internal/logging"
	"github.com/rshade/svccat/internal/pagination"
)

// pageFlags are the inputs shared by browse and list.
type pageFlags struct {
	search   string
	page     int
	pageSize int
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "initial search term")
	cmd.Flags().IntVar(&f.page, "page", pagination.DefaultPage, "page number (1-based)")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "services per page (0 = use config default)")
}

// inputs builds the controller inputs, falling back to the configured page size.
func (f *pageFlags) inputs(cfg *config.Config) (controller.Inputs, error) {
	size := f.pageSize
	if size == 0 {
		size = cfg.Catalog.PageSize
	}
	params := pagination.Params{Page: f.page, PageSize: size}
	if err := params.Validate(); err != nil {
		return controller.Inputs{}, fmt.Errorf("invalid flags: %w", err)
	}
	return controller.NewInputs(f.search, params.Page, params.PageSize), nil
}

// newController wires an HTTP catalog client into a pagination controller.
func newController(cmd *cobra.Command, cfg *config.Config, inputs controller.Inputs) *controller.Controller {
	client := fetch.NewHTTPClient(cfg.Catalog.Endpoint, fetch.WithTimeout(cfg.Catalog.Timeout))
	logger.Debug().
		Str("endpoint", client.Endpoint()).
		Dur("timeout", cfg.Catalog.Timeout).
		Msg("catalog client configured")

	return controller.New(client, inputs,
		controller.WithDebounceDelay(cfg.Catalog.Debounce),
		controller.WithLogger(logging.ComponentLogger(*logging.FromContext(cmd.Context()), "controller")),
	)
}
