package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/clipsend/clipsend/internal/config"
	"github.com/clipsend/clipsend/internal/core/version"
	"github.com/clipsend/clipsend/internal/i18n"
	"github.com/clipsend/clipsend/internal/messages"
	"github.com/clipsend/clipsend/internal/router"
)

// DefaultPort is used when the config does not set one.
const DefaultPort = 8787

// Response is the standard API response structure
type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// QuickRequest is the request body for POST /api/quick
type QuickRequest struct {
	URL    string `json:"url" binding:"required"`
	Source string `json:"source,omitempty"`
}

// ComposeRequest is the request body for POST /api/compose
type ComposeRequest struct {
	URL          string `json:"url" binding:"required"`
	Text         string `json:"text,omitempty"`
	ForceRefresh bool   `json:"forceRefresh,omitempty"`
	SaveToBoard  bool   `json:"saveToBoard,omitempty"`
}

// SyncRequest is the request body for POST /api/capture/sync
type SyncRequest struct {
	ItemID string `json:"itemId,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Server is the local HTTP relay: it accepts send and capture requests from
// front-end surfaces and forwards them through the dispatcher.
type Server struct {
	port   int
	apiKey string
	lang   string
	router *router.Router
	cfg    *config.Config
	server *http.Server
	engine *gin.Engine
}

// NewServer creates a relay server around a dispatcher.
func NewServer(port int, apiKey string, rt *router.Router) *Server {
	cfg := config.LoadOrDefault()

	if port <= 0 {
		port = cfg.Server.Port
	}
	if port <= 0 {
		port = DefaultPort
	}
	if apiKey == "" {
		apiKey = cfg.Server.APIKey
	}

	return &Server{
		port:   port,
		apiKey: apiKey,
		lang:   cfg.Language,
		router: rt,
		cfg:    cfg,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	if !config.Exists() {
		t := i18n.GetTranslations(s.lang)
		log.Printf("⚠️  %s", t.Server.NoConfigWarning)
		log.Printf("   %s", t.Server.RunInitHint)
	}

	gin.SetMode(gin.ReleaseMode)

	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.loggingMiddleware())
	if s.apiKey != "" {
		s.engine.Use(s.authMiddleware())
	}

	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/quick", s.handleQuick)
	api.POST("/compose", s.handleCompose)
	api.GET("/compose-state", s.handleComposeState)
	api.POST("/message", s.handleMessage)
	api.POST("/capture/sync", s.handleCaptureSync)
	api.POST("/capture/observe", s.handleCaptureObserve)
	api.GET("/capture/url", s.handleCapturedURL)
	api.DELETE("/capture/:tab", s.handleCaptureDelete)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // The ingest timeout governs send duration.
		IdleTimeout:  120 * time.Second,
	}

	t := i18n.GetTranslations(s.lang)
	log.Printf(t.Server.Starting, s.port)
	if s.apiKey != "" {
		log.Printf("API key authentication enabled")
	}

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured engine (tests).
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Middleware

func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Health endpoint doesn't require auth
		if c.Request.URL.Path == "/api/health" {
			c.Next()
			return
		}

		apiKey := c.GetHeader("X-API-Key")
		if apiKey != s.apiKey {
			c.JSON(http.StatusUnauthorized, Response{
				Code:    401,
				Data:    nil,
				Message: "invalid or missing API key",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()
		c.Header("X-Request-Id", reqID)
		c.Next()
		log.Printf("[%s] %s %s %d %s", reqID[:8], c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// tabID reads the X-Tab-Id header; -1 when absent or malformed.
func tabID(c *gin.Context) int {
	raw := c.GetHeader("X-Tab-Id")
	if raw == "" {
		return -1
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id < 0 {
		return -1
	}
	return id
}

// Handlers

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{
			"status":  "ok",
			"version": version.Version,
		},
		Message: "clipsend relay is running",
	})
}

func (s *Server) handleQuick(c *gin.Context) {
	var req QuickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: err.Error(),
		})
		return
	}

	source := req.Source
	if source == "" {
		source = messages.SourceUnknown
	}

	resp := s.router.SendQuick(c.Request.Context(), messages.SendQuick{URL: req.URL, Source: source})
	s.writeAction(c, resp)
}

func (s *Server) handleCompose(c *gin.Context) {
	var req ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: err.Error(),
		})
		return
	}

	resp := s.router.SendCompose(c.Request.Context(), messages.SendCompose{
		URL:          req.URL,
		Text:         req.Text,
		ForceRefresh: req.ForceRefresh,
		SaveToBoard:  req.SaveToBoard,
	})
	s.writeAction(c, resp)
}

func (s *Server) handleComposeState(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: s.router.ComposeState(),
	})
}

// handleMessage accepts a raw wire message and dispatches it, mirroring what
// a runtime message port would do. The tab id rides in the X-Tab-Id header.
func (s *Server) handleMessage(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: "unreadable body",
		})
		return
	}

	req, err := messages.DecodeRequest(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: "unrecognized message",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: s.router.Handle(c.Request.Context(), tabID(c), req),
	})
}

func (s *Server) handleCaptureSync(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: err.Error(),
		})
		return
	}

	resp := s.router.SyncActiveItem(tabID(c), messages.SyncActiveItem{ItemID: req.ItemID, URL: req.URL})
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: resp,
	})
}

// handleCaptureObserve feeds a network-observed URL into the capture store.
func (s *Server) handleCaptureObserve(c *gin.Context) {
	var req SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: "url is required",
		})
		return
	}

	s.router.ObserveRequest(tabID(c), req.URL)
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: gin.H{"ok": true},
	})
}

func (s *Server) handleCapturedURL(c *gin.Context) {
	id := tabID(c)
	if raw := c.Query("tab"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			id = parsed
		}
	}

	resp := s.router.CapturedURL(id, messages.GetCapturedURL{DOMCandidate: c.Query("url")})
	c.JSON(http.StatusOK, Response{
		Code: 200,
		Data: resp,
	})
}

func (s *Server) handleCaptureDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("tab"))
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, Response{
			Code:    400,
			Data:    nil,
			Message: "invalid tab id",
		})
		return
	}

	s.router.CloseTab(id)
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Data:    gin.H{"ok": true},
		Message: "capture state dropped",
	})
}

func (s *Server) writeAction(c *gin.Context, resp messages.ActionResponse) {
	code := http.StatusOK
	if !resp.OK {
		code = http.StatusBadGateway
		if resp.ErrorCode == "INVALID_PAYLOAD" || resp.ErrorCode == "SETTINGS_MISSING" {
			code = http.StatusUnprocessableEntity
		}
	}
	c.JSON(code, Response{
		Code:    code,
		Data:    resp,
		Message: resp.Message,
	})
}
