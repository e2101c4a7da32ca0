package page

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const readHeaderTimeout = 5 * time.Second

// ServeHTTP renders the current page.
func (d *Document) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	body, err := d.Bytes()
	if err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

// NewRouter serves the document at "/".
func NewRouter(d *Document, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), func(c *gin.Context) {
		c.Next()
		logger.Debug().
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Msg("page request")
	})
	router.GET("/", gin.WrapH(d))
	router.HEAD("/", gin.WrapH(d))
	return router
}

// NewServer builds an HTTP server for the document listening on addr.
func NewServer(addr string, d *Document, logger *zerolog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(d, logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
