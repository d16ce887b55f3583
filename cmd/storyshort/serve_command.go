package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"storyshort/internal/api"
	"storyshort/internal/assets"
	"storyshort/internal/composition"
	"storyshort/internal/config"
	"storyshort/internal/export"
	"storyshort/internal/library"
	"storyshort/internal/logging"
	"storyshort/internal/media/audio"
	"storyshort/internal/notifications"
	"storyshort/internal/playback"
	"storyshort/internal/preflight"
	"storyshort/internal/timeline"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	var seed uint64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			addr := strings.TrimSpace(bind)
			if addr == "" {
				addr = cfg.Paths.APIBind
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			return runServer(cmd.Context(), cfg, ctx.loggerValue(), ctx.audioSourceFor(cfg), addr, seed, func(a net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Preview API listening on http://%s\n", a)
			})
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Listen address (defaults to paths.api_bind)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for background selection")
	return cmd
}

// runServer serves the preview API until ctx is cancelled. ready is called
// once the listener is bound.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, source audio.Source, addr string, seed uint64, ready func(net.Addr)) error {
	logger = logging.NewComponentLogger(logger, "serve")

	for _, failed := range preflight.Failed(preflight.RunAll(ctx, cfg)) {
		logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", failed.Name),
			logging.String("detail", failed.Detail),
			logging.String(logging.FieldImpact, "exports may fail until resolved"),
		)
	}

	var store *library.Store
	if cfg.Library.Enabled {
		opened, err := library.Open(cfg)
		if err != nil {
			return fmt.Errorf("open library: %w", err)
		}
		defer opened.Close()
		store = opened
	}

	host := newHost(logger, store)
	server := api.NewServer(ctx, api.Options{
		Config:   cfg,
		Host:     host,
		Source:   source,
		Exporter: export.New(cfg, source, logger),
		Library:  store,
		Notifier: notifications.NewService(cfg),
		Chooser:  assets.NewChooser(seed),
		Logger:   logger,
	})
	defer server.Close()

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if ready != nil {
		ready(listener.Addr())
	}
	logger.Info("preview api started", logging.String("addr", listener.Addr().String()))

	clockCtx, stopClock := context.WithCancel(ctx)
	defer stopClock()
	go func() {
		_ = host.Run(clockCtx, subtitleLogger(logger))
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown preview api: %w", err)
	}
	logger.Info("preview api stopped")
	return nil
}

// subtitleLogger reports subtitle changes during playback at debug level.
func subtitleLogger(logger *slog.Logger) playback.Renderer {
	last := timeline.NoSegment
	return playback.RendererFunc(func(desc composition.RenderDescriptor) {
		if desc.Segment == last {
			return
		}
		last = desc.Segment
		logger.Debug("subtitle changed",
			logging.Int("frame", desc.Frame),
			logging.Int("segment", desc.Segment),
			logging.String("text", desc.SubtitleText),
		)
	})
}

// newHost builds the playback host. Resolved timings are written back to the
// library when one is open.
func newHost(logger *slog.Logger, store *library.Store) *playback.Host {
	if store == nil {
		return playback.NewHost(logger)
	}
	return playback.NewHost(logger, playback.WithResolvedHook(func(comp *composition.Composition) {
		ctx := logging.WithCompositionID(context.Background(), comp.ID())
		if err := store.UpdateTiming(ctx, comp); err != nil {
			logging.WarnWithContext(logging.WithContext(ctx, logger), "failed to store resolved timing", "library_update_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "history shows fallback timing"),
			)
		}
	}))
}
