package cli

import (
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/rshade/svccat/internal/catalog"
	"github.com/rshade/svccat/internal/fixture"
	"github.com/rshade/svccat/internal/logging"
)

// NewServeFixturesCmd creates the serve-fixtures command, a local catalog API for
// development and demos.
func NewServeFixturesCmd() *cobra.Command {
	var (
		file    string
		addr    string
		latency time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve-fixtures",
		Short: "Serve a static catalog over HTTP",
		Long: `Serves GET /api/services from a JSON file, or from a built-in demo catalog when
--file is not given. The q parameter filters by name and description; results
are neither sorted nor paginated.`,
		Example: `  svccat serve-fixtures
  svccat serve-fixtures --file catalog.json --addr :9090 --latency 300ms`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationConfigOptional: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				records []catalog.ServiceRecord
				err     error
			)
			if file != "" {
				records, err = fixture.Load(file)
			} else {
				records, err = fixture.Sample()
			}
			if err != nil {
				return err
			}

			if debug, _ := cmd.Flags().GetBool("debug"); !debug {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := fixture.NewServer(records,
				fixture.WithLatency(latency),
				fixture.WithLogger(logging.ComponentLogger(logger, "fixture")),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, addr, func(a net.Addr) {
				cmd.Printf("Serving %d services at http://%s%s (Ctrl+C to stop)\n",
					len(records), a.String(), fixture.ServicesPath)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "JSON file with an array of service records (default: built-in demo catalog)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "artificial delay added to every catalog response")

	return cmd
}
