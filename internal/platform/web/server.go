// Package web serves the leaderboard over HTTP with gin.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/php-runner/internal/registry"
	"github.com/vovakirdan/php-runner/internal/storage"
)

// Limits for the scores endpoint.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ScoreStore is the read side of the score storage.
type ScoreStore interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	Stats(gameID string) (*storage.GameStats, error)
}

// Server exposes the leaderboard API.
type Server struct {
	addr   string
	store  ScoreStore
	logger *log.Logger
	router *gin.Engine
}

// GameSummary is one entry of /api/games.
type GameSummary struct {
	registry.GameInfo
	HighScore int `json:"high_score"`
	Runs      int `json:"runs"`
}

// NewServer creates the API server. A nil store makes score endpoints
// answer 503.
func NewServer(addr string, store ScoreStore, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{addr: addr, store: store, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/healthz", s.health)

	api := r.Group("/api")
	api.GET("/games", s.games)
	scores := api.Group("/scores/:game", s.knownGame())
	scores.GET("", s.topScores)
	scores.GET("/stats", s.stats)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// requestLogger logs every request through charmbracelet/log.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// knownGame rejects unregistered game IDs, suggesting a close match.
func (s *Server) knownGame() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("game")
		if registry.Exists(id) {
			c.Next()
			return
		}
		body := gin.H{"error": fmt.Sprintf("unknown game %q", id)}
		if suggestion, ok := registry.Suggest(id); ok {
			body["suggestion"] = suggestion
		}
		c.AbortWithStatusJSON(http.StatusNotFound, body)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": s.store != nil})
}

func (s *Server) games(c *gin.Context) {
	games := registry.List()
	out := make([]GameSummary, 0, len(games))
	for _, g := range games {
		summary := GameSummary{GameInfo: g}
		if s.store != nil {
			stats, err := s.store.Stats(g.ID)
			if err != nil {
				s.fail(c, err)
				return
			}
			summary.HighScore = stats.HighScore
			summary.Runs = stats.GamesCount
		}
		out = append(out, summary)
	}
	c.JSON(http.StatusOK, gin.H{"games": out})
}

func (s *Server) topScores(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}

	limit := DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("limit must be between 1 and %d", MaxLimit)})
			return
		}
		limit = n
	}

	game := c.Param("game")
	scores, err := s.store.TopScores(game, limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "scores": scores})
}

func (s *Server) stats(c *gin.Context) {
	if !s.requireStore(c) {
		return
	}
	stats, err := s.store.Stats(c.Param("game"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) requireStore(c *gin.Context) bool {
	if s.store != nil {
		return true
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "score storage unavailable"})
	return false
}

// fail logs the cause and answers with a generic 500.
func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
