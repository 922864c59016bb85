package tui

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/controller"
)

const placeholder = "-"

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatRange renders the "Showing first–last of total" footer text.
func FormatRange(s controller.PaginationSet) string {
	if s.IsEmpty() {
		return "No services"
	}
	return printer.Sprintf("Showing %d–%d of %d", s.FirstItemIndex, s.LastItemIndex, s.TotalItems)
}

// FormatPage renders "Page k/n", or an empty string when the result is empty.
func FormatPage(s controller.PaginationSet) string {
	if s.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("Page %d/%d", s.CurrentPage, s.TotalPages())
}

// FormatBool renders a yes/no cell.
func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatUptime renders the uptime metric as a percentage.
func FormatUptime(r catalog.ServiceRecord) string {
	u, ok := r.Uptime()
	if !ok {
		return placeholder
	}
	return printer.Sprintf("%.2f%%", u)
}

// FormatLatestVersion renders the name of the newest version.
func FormatLatestVersion(r catalog.ServiceRecord) string {
	v := r.LatestVersion()
	if v == nil || v.Name == "" {
		return placeholder
	}
	return v.Name
}

// Row renders a record as table cells: name, type, published, configured,
// latest version, uptime.
func Row(r catalog.ServiceRecord) []string {
	typ := r.Type
	if typ == "" {
		typ = placeholder
	}
	return []string{
		r.Name,
		typ,
		FormatBool(r.Published),
		FormatBool(r.IsConfigured()),
		FormatLatestVersion(r),
		FormatUptime(r),
	}
}

// Columns are the table headers matching Row.
//
//nolint:gochecknoglobals // read-only column titles
var Columns = []string{"Name", "Type", "Published", "Configured", "Latest", "Uptime"}
