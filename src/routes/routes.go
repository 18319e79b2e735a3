package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"filmoasis/src/metrics"
	"filmoasis/src/middleware"
	events "filmoasis/src/modules/events/controllers"
	files "filmoasis/src/modules/files/controllers"
	movies "filmoasis/src/modules/movies/controllers"
	statistics "filmoasis/src/modules/statistics/controllers"
)

// Dependencies are the handlers and probes the route table serves.
// Stream and Files are optional.
type Dependencies struct {
	Movies     *movies.MovieController
	Statistics *statistics.StatisticsController
	Stream     *events.StreamController
	Files      *files.FileController
	Ready      func(ctx context.Context) bool
}

// NewRouter builds the engine with the shared middleware stack.
func NewRouter(allowOrigins []string, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.Metrics(),
		cors.New(corsConfig(allowOrigins)),
	)

	RegisterRoutes(router, deps)
	return router
}

func corsConfig(allowOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range allowOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = allowOrigins
	cfg.AllowCredentials = true
	return cfg
}

func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "مرحباً بك في Film Oasis API"})
	})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if deps.Ready != nil && deps.Ready(c.Request.Context()) {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
		} else {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		}
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")

	moviesRoutes := api.Group("/movies")
	{
		moviesRoutes.GET("", deps.Movies.ListMovies)
		moviesRoutes.POST("", deps.Movies.CreateMovie)
		moviesRoutes.GET("search", deps.Movies.SearchMovies)
		moviesRoutes.GET("tmdb/:tmdbId", deps.Movies.GetMovieByTMDBID)
		moviesRoutes.GET(":id", deps.Movies.GetMovie)
		moviesRoutes.PUT(":id", deps.Movies.UpdateMovie)
		moviesRoutes.DELETE(":id", deps.Movies.DeleteMovie)

		moviesRoutes.GET(":id/links", deps.Movies.ListLinks)
		moviesRoutes.POST(":id/links", deps.Movies.AddLink)
		moviesRoutes.PUT(":id/links", deps.Movies.ReplaceLinks)
		moviesRoutes.DELETE(":id/links/:linkId", deps.Movies.DeleteLink)
	}

	api.GET("/statistics", deps.Statistics.GetStatistics)

	if deps.Files != nil {
		staticProxyRoutes := api.Group("/static")
		{
			staticProxyRoutes.GET("/*filepath", deps.Files.Static)
		}
	}

	if deps.Stream != nil {
		router.GET("/ws", deps.Stream.Stream)
	}
}
