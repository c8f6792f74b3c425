// Package server exposes the editor over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ByLCY/sigstudio/internal/config"
	"github.com/ByLCY/sigstudio/internal/editor"
)

// Server 持有 HTTP 路由与编辑器。
type Server struct {
	editor  *editor.Editor
	log     *slog.Logger
	logoMax int64
	engine  *gin.Engine
}

// New 创建服务并注册全部路由。logoMax 限制上传请求体大小，<=0 时不限制。
func New(ed *editor.Editor, log *slog.Logger, logoMax int64) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{editor: ed, log: log, logoMax: logoMax}
	s.engine = s.routes()
	return s
}

// Handler 返回 http.Handler，便于测试或嵌入其他服务。
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), s.logging(), s.recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/profiles", s.listProfiles)
		api.POST("/profiles", s.createProfile)
		api.GET("/profiles/:id", s.getProfile)
		api.PUT("/profiles/:id", s.updateProfile)
		api.DELETE("/profiles/:id", s.deleteProfile)
		api.GET("/profiles/:id/preview", s.preview)
		api.GET("/profiles/:id/layout", s.layoutTree)
		api.POST("/profiles/:id/copy", s.copyProfile)
		api.POST("/profiles/:id/logo", s.uploadLogo)
		api.POST("/profiles/:id/footer", s.suggestFooter)
		api.POST("/profiles/:id/layouts/:layoutId", s.applyLayout)
		api.POST("/profiles/:id/presets/:name", s.applyPreset)

		api.GET("/layouts", s.listLayouts)
		api.POST("/layouts", s.saveLayout)
		api.DELETE("/layouts/:id", s.deleteLayout)
		api.GET("/presets", s.listPresets)

		api.POST("/suggest", s.suggest)
	}
	return r
}

// Run 监听 cfg 指定的地址，ctx 取消后优雅关闭。
func (s *Server) Run(ctx context.Context, cfg config.HTTPConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.log.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
