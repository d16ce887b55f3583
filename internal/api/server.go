package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storyshort/internal/assets"
	"storyshort/internal/composition"
	"storyshort/internal/config"
	"storyshort/internal/export"
	"storyshort/internal/library"
	"storyshort/internal/logging"
	"storyshort/internal/media/audio"
	"storyshort/internal/notifications"
	"storyshort/internal/playback"
	"storyshort/internal/subtitles"
)

const requestIDHeader = "X-Request-ID"

// Exporter renders a composition to a file.
type Exporter interface {
	Export(ctx context.Context, comp *composition.Composition, dest string) (export.Result, error)
}

// Options wires a Server's collaborators. Source, Exporter, Library, and
// Chooser are optional.
type Options struct {
	Config   *config.Config
	Host     *playback.Host
	Source   audio.Source
	Exporter Exporter
	Library  *library.Store
	Notifier notifications.Service
	Chooser  assets.Chooser
	Logger   *slog.Logger
}

// Server exposes the playback host over HTTP.
type Server struct {
	cfg      *config.Config
	host     *playback.Host
	source   audio.Source
	exporter Exporter
	store    *library.Store
	notifier notifications.Service
	choose   assets.Chooser
	logger   *slog.Logger

	baseCtx     context.Context
	mu          sync.Mutex
	cancelWatch context.CancelFunc
	watchDone   <-chan struct{}
}

// NewServer constructs a server. Metadata lookups started by the server are
// bound to ctx.
func NewServer(ctx context.Context, opts Options) *Server {
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	host := opts.Host
	if host == nil {
		host = playback.NewHost(opts.Logger)
	}
	choose := opts.Chooser
	if choose == nil {
		choose = assets.NewChooser(0)
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.NewService(nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Server{
		cfg:      cfg,
		host:     host,
		source:   opts.Source,
		exporter: opts.Exporter,
		store:    opts.Library,
		notifier: notifier,
		choose:   choose,
		logger:   logging.NewComponentLogger(opts.Logger, "api"),
		baseCtx:  ctx,
	}
}

// Host returns the playback host driven by the server.
func (s *Server) Host() *playback.Host {
	return s.host
}

// Router constructs the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())

	r.GET("/health", s.handleHealth)
	r.POST("/compositions", s.handleCreateComposition)
	r.GET("/compositions", s.handleListCompositions)
	r.GET("/composition", s.handleCurrentComposition)
	r.GET("/playback", s.handlePlayback)
	r.POST("/playback/play", s.handlePlay)
	r.POST("/playback/pause", s.handlePause)
	r.POST("/playback/scrub", s.handleScrub)
	r.GET("/frames/:frame", s.handleFrame)
	r.GET("/subtitles.srt", s.handleSubtitles)
	r.POST("/export", s.handleExport)
	return r
}

// Close cancels any outstanding metadata lookup.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelWatch != nil {
		s.cancelWatch()
		s.cancelWatch = nil
	}
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *Server) requestLogger(c *gin.Context) *slog.Logger {
	return logging.WithContext(c.Request.Context(), s.logger)
}

func abortWithError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleCreateComposition(c *gin.Context) {
	var req CreateCompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid composition request", err)
		return
	}

	if strings.TrimSpace(req.AudioRef) == "" {
		abortWithError(c, http.StatusBadRequest, "audioRef must not be blank", nil)
		return
	}

	pair := composition.AssetPair{ImageRef: req.ImageRef, VideoRef: req.VideoRef}
	if strings.TrimSpace(pair.ImageRef) == "" && strings.TrimSpace(pair.VideoRef) == "" {
		pair = assets.Pick(s.cfg.Assets.Images, s.cfg.Assets.Videos, s.choose)
	}
	comp := composition.New(composition.Input{
		Script:          req.Script,
		AudioRef:        req.AudioRef,
		Assets:          pair,
		FPS:             s.cfg.Composition.FPS,
		FallbackSeconds: s.cfg.Composition.FallbackSeconds,
	})

	logger := s.requestLogger(c)
	if s.store != nil {
		if err := s.store.Save(c.Request.Context(), comp); err != nil {
			logging.WarnWithContext(logger, "failed to record composition", "library_save_failed",
				logging.String(logging.FieldCompositionID, comp.ID()),
				logging.Error(err),
				logging.String(logging.FieldImpact, "composition missing from history"),
			)
		}
	}

	s.load(comp)
	c.JSON(http.StatusCreated, FromComposition(comp))
}

// load swaps the active composition and starts its metadata lookup,
// cancelling the lookup for the previous one.
func (s *Server) load(comp *composition.Composition) {
	s.mu.Lock()
	if s.cancelWatch != nil {
		s.cancelWatch()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.cancelWatch = cancel
	s.host.Load(comp)
	s.watchDone = s.host.Watch(ctx, s.source)
	s.mu.Unlock()
}

func (s *Server) handleListCompositions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		abortWithError(c, http.StatusBadRequest, "limit must be a non-negative integer", err)
		return
	}
	if s.store == nil {
		c.JSON(http.StatusOK, []HistoryEntry{})
		return
	}
	records, err := s.store.List(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to list compositions", err)
		return
	}
	c.JSON(http.StatusOK, FromRecords(records))
}

func (s *Server) handleCurrentComposition(c *gin.Context) {
	comp := s.host.Composition()
	if comp == nil {
		abortWithError(c, http.StatusNotFound, playback.ErrNoComposition.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, FromComposition(comp))
}

func (s *Server) handlePlayback(c *gin.Context) {
	status := FromStatus(s.host.Status())
	if desc, err := s.host.Current(); err == nil {
		frame := FromDescriptor(desc)
		status.Current = &frame
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handlePlay(c *gin.Context) {
	if err := s.host.Play(); err != nil {
		s.transportError(c, err)
		return
	}
	s.handlePlayback(c)
}

func (s *Server) handlePause(c *gin.Context) {
	if err := s.host.Pause(); err != nil {
		s.transportError(c, err)
		return
	}
	s.handlePlayback(c)
}

func (s *Server) handleScrub(c *gin.Context) {
	var req ScrubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid scrub request", err)
		return
	}
	desc, err := s.host.Scrub(*req.Frame)
	if err != nil {
		s.transportError(c, err)
		return
	}
	c.JSON(http.StatusOK, FromDescriptor(desc))
}

func (s *Server) handleFrame(c *gin.Context) {
	frame, err := strconv.Atoi(c.Param("frame"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "frame must be an integer", err)
		return
	}
	comp := s.host.Composition()
	if comp == nil {
		s.transportError(c, playback.ErrNoComposition)
		return
	}
	c.JSON(http.StatusOK, FromDescriptor(comp.Describe(frame)))
}

func (s *Server) handleSubtitles(c *gin.Context) {
	comp := s.host.Composition()
	if comp == nil {
		s.transportError(c, playback.ErrNoComposition)
		return
	}
	var buf bytes.Buffer
	if err := subtitles.WriteSRT(&buf, subtitles.BuildCues(comp)); err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to render subtitles", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="subtitles.srt"`)
	c.Data(http.StatusOK, "application/x-subrip; charset=utf-8", buf.Bytes())
}

func (s *Server) handleExport(c *gin.Context) {
	if s.exporter == nil {
		abortWithError(c, http.StatusServiceUnavailable, "export is not configured", nil)
		return
	}
	comp := s.host.Composition()
	if comp == nil {
		s.transportError(c, playback.ErrNoComposition)
		return
	}

	ctx := logging.WithCompositionID(c.Request.Context(), comp.ID())
	logger := logging.WithContext(ctx, s.logger)
	result, err := s.exporter.Export(ctx, comp, "")
	if s.store != nil {
		if _, recErr := s.store.RecordExport(ctx, comp.ID(), result.OutputPath, err); recErr != nil {
			logging.WarnWithContext(logger, "failed to record export", "library_export_failed",
				logging.Error(recErr),
			)
		}
	}
	s.notify(ctx, logger, comp.ID(), result, err)
	if err != nil {
		switch {
		case errors.Is(err, export.ErrNoVisual), errors.Is(err, export.ErrVisualMissing), errors.Is(err, export.ErrAudioMissing):
			abortWithError(c, http.StatusNotFound, "export input missing", err)
		case errors.Is(err, export.ErrBusy):
			abortWithError(c, http.StatusConflict, "export already running", err)
		default:
			logging.ErrorWithContext(logger, "export failed", "export_failed", logging.Error(err))
			abortWithError(c, http.StatusInternalServerError, "ffmpeg failed", err)
		}
		return
	}
	c.FileAttachment(result.OutputPath, s.cfg.Export.OutputName)
}

func (s *Server) notify(ctx context.Context, logger *slog.Logger, compositionID string, result export.Result, exportErr error) {
	var err error
	if exportErr != nil {
		err = s.notifier.NotifyExportFailed(ctx, compositionID, exportErr)
	} else {
		err = s.notifier.NotifyExportCompleted(ctx, notifications.Export{
			CompositionID: compositionID,
			OutputPath:    result.OutputPath,
			Seconds:       result.Seconds,
			Degraded:      result.Degraded,
			Elapsed:       result.Elapsed,
		})
	}
	if err != nil {
		logging.WarnWithContext(logger, "failed to send export notification", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "no ntfy alert for this export"),
		)
	}
}

func (s *Server) transportError(c *gin.Context, err error) {
	if errors.Is(err, playback.ErrNoComposition) {
		abortWithError(c, http.StatusConflict, err.Error(), nil)
		return
	}
	abortWithError(c, http.StatusInternalServerError, "playback error", err)
}
