package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/svccat/internal/router"
)

// ViewFactory builds the model served by a route.
type ViewFactory func(ctx context.Context, ctrl Controller, bridge *Bridge) tea.Model

// NewRouter returns the route table of the browser.
func NewRouter() (*router.Router[ViewFactory], error) {
	return router.New(router.Route[ViewFactory]{
		Name: router.Home,
		Path: router.HomePath,
		View: func(ctx context.Context, ctrl Controller, bridge *Bridge) tea.Model {
			return NewHomeModel(ctx, ctrl, bridge)
		},
	})
}
