// Package gin exposes the insights query over HTTP.
package gin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/shopinsight"
	"github.com/gin-gonic/gin"
)

// Default server settings.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 10 * time.Second
)

// NotFoundDetail is the response detail for stores that cannot be reached.
const NotFoundDetail = "Website not found or inaccessible"

// ErrorStatus maps an error to its HTTP status code.
func ErrorStatus(err error) int {
	switch shopinsight.ErrorCode(err) {
	case shopinsight.EUNREACHABLE, shopinsight.ENOTFOUND:
		return http.StatusNotFound
	case shopinsight.EINVALID:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Server serves the insights API.
type Server struct {
	// Insights answers GET /api/v1/insights.
	Insights shopinsight.InsightService

	// Brands backs the /api/v1/brands routes. Optional.
	Brands shopinsight.BrandService

	Addr            string
	ShutdownTimeout time.Duration
	Logger          *slog.Logger

	router *gin.Engine
}

// NewServer creates a Server with its routes registered.
func NewServer(insights shopinsight.InsightService, brands shopinsight.BrandService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		Insights:        insights,
		Brands:          brands,
		Addr:            DefaultAddr,
		ShutdownTimeout: DefaultShutdownTimeout,
		Logger:          logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), s.logRequests())

	v1 := router.Group("/api/v1")
	v1.GET("/insights", s.handleInsights)
	if brands != nil {
		v1.GET("/brands", s.handleBrands)
		v1.GET("/brands/:id", s.handleBrand)
	}
	s.router = router
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", s.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// ctx is already canceled; shutdown needs its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.Logger.Info("server stopped")
	return nil
}

func (s *Server) handleInsights(c *gin.Context) {
	websiteURL := c.Query("website_url")
	if websiteURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "website_url is required"})
		return
	}

	result, err := s.Insights.Insights(c.Request.Context(), websiteURL)
	if err != nil {
		_ = c.Error(err)
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Structured)
}

func (s *Server) handleBrands(c *gin.Context) {
	var filter shopinsight.BrandFilter
	if v := c.Query("store_url"); v != "" {
		filter.StoreURL = &v
	}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		s.writeError(c, err)
		return
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		s.writeError(c, err)
		return
	}

	brands, err := s.Brands.FindBrands(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		s.writeError(c, err)
		return
	}
	if brands == nil {
		brands = []*shopinsight.Brand{}
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

func (s *Server) handleBrand(c *gin.Context) {
	brand, err := s.Brands.FindBrandByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, brand)
}

// writeError renders err as {"detail": ...}.
func (s *Server) writeError(c *gin.Context, err error) {
	status := ErrorStatus(err)
	detail := shopinsight.ErrorMessage(err)
	switch {
	case shopinsight.ErrorCode(err) == shopinsight.EUNREACHABLE:
		detail = NotFoundDetail
	case shopinsight.ErrorCode(err) == shopinsight.EINTERNAL:
		detail = "Internal server error: " + err.Error()
	}
	c.JSON(status, gin.H{"detail": detail})
}

func intQuery(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, shopinsight.Errorf(shopinsight.EINVALID, "%s must be a non-negative integer", name)
	}
	return n, nil
}

// logRequests logs one line per request after it completes.
func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		}
		if len(c.Errors) > 0 {
			s.Logger.Warn("request", append(attrs, "error", c.Errors.Last().Err)...)
			return
		}
		s.Logger.Info("request", attrs...)
	}
}
