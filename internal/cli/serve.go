package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/uklc/lessons/internal/auth"
	"github.com/uklc/lessons/internal/httpapi"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the lesson HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = a.cfg.HTTPAddress
			}

			m, rec, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer rec.Close()

			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			if a.cfg.AdminHash == "" {
				a.log.Warn("no admin secret hash configured, changes are disabled")
			}

			router := httpapi.NewRouter(httpapi.RouterConfig{
				Catalog:     m,
				Verifier:    auth.NewBcryptVerifier(a.cfg.AdminHash),
				Log:         a.log,
				CORSOrigins: a.cfg.CORSOrigins,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return httpapi.Serve(ctx, addr, router, a.log)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default: $UKLC_HTTP_ADDR or :8080)")
	return cmd
}
