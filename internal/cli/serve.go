package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verdant-io/verdant/internal/api"
	"github.com/verdant-io/verdant/internal/events"
	"github.com/verdant-io/verdant/internal/scoring"
	"github.com/verdant-io/verdant/internal/store"
)

// shutdownTimeout bounds graceful drain of in-flight requests.
const shutdownTimeout = 10 * time.Second

// eventBuffer sizes the notification channel between the scoring service
// and the consumer goroutine.
const eventBuffer = 64

// newServeCmd creates the serve command running the REST API.
func newServeCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			st, err := store.Open(state.cfg.Database.Path)
			if err != nil {
				return err
			}

			emitter := events.NewChannel(eventBuffer)
			go consumeEvents(state, emitter)

			svc := scoring.NewService(st, emitter)
			srv := api.NewServer(st, svc, state.table, state.logger)

			httpSrv := &http.Server{
				Addr:              state.cfg.Server.Addr,
				Handler:           srv.Router(state.cfg.Server.AllowedOrigins),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				state.logger.Info().
					Str("addr", state.cfg.Server.Addr).
					Msg("server listening")
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			state.logger.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			emitter.Close()

			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

// consumeEvents logs score change notifications until the emitter is
// closed. This is the notification sink; delivery is best-effort.
func consumeEvents(state *appState, emitter *events.Channel) {
	for ev := range emitter.Events() {
		state.logger.Info().
			Str("event_id", ev.ID).
			Str("company_id", ev.CompanyID.String()).
			Str("framework", string(ev.FrameworkID)).
			Int("progress", ev.Progress).
			Int("score", ev.Score).
			Msg("framework scores updated")
	}
}
