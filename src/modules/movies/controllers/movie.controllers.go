package movies

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	lib "filmoasis/src/modules/movies/lib"
	movies "filmoasis/src/modules/movies/models"
	"filmoasis/src/utils"
)

// Catalog is the storage the movie and link handlers need.
type Catalog interface {
	ListMovies(ctx context.Context) ([]movies.Movie, error)
	GetMovie(ctx context.Context, id int64) (*movies.Movie, error)
	GetMovieByTMDBID(ctx context.Context, tmdbID int64) (*movies.Movie, error)
	CreateMovie(ctx context.Context, req lib.MovieCreateRequest) (*movies.Movie, error)
	UpdateMovie(ctx context.Context, id int64, req lib.MovieUpdateRequest) (*movies.Movie, error)
	DeleteMovie(ctx context.Context, id int64) (*movies.Movie, error)
	SearchMovies(ctx context.Context, q string) ([]movies.Movie, error)
	ListMovieLinks(ctx context.Context, movieID int64) ([]movies.MovieLink, error)
	AddMovieLink(ctx context.Context, movieID int64, req lib.LinkCreateRequest) (*movies.MovieLink, error)
	DeleteMovieLink(ctx context.Context, movieID, linkID int64) (*movies.MovieLink, error)
	ReplaceMovieLinks(ctx context.Context, movieID int64, links []movies.MovieLink) ([]movies.MovieLink, error)
}

type MovieController struct {
	catalog Catalog
}

func NewMovieController(catalog Catalog) *MovieController {
	return &MovieController{catalog: catalog}
}

func (m *MovieController) ListMovies(c *gin.Context) {
	list, err := m.catalog.ListMovies(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (m *MovieController) SearchMovies(c *gin.Context) {
	list, err := m.catalog.SearchMovies(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (m *MovieController) GetMovieByTMDBID(c *gin.Context) {
	tmdbID, err := utils.ParamID(c, "tmdbId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	movie, err := m.catalog.GetMovieByTMDBID(c.Request.Context(), tmdbID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// GetMovie returns the movie with its links grouped for display.
func (m *MovieController) GetMovie(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	ctx := c.Request.Context()
	movie, err := m.catalog.GetMovie(ctx, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	links, err := m.catalog.ListMovieLinks(ctx, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib.Details(*movie, links))
}

func (m *MovieController) CreateMovie(c *gin.Context) {
	var req lib.MovieCreateRequest
	if err := utils.BindJson(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	movie, err := m.catalog.CreateMovie(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, movie)
}

func (m *MovieController) UpdateMovie(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req lib.MovieUpdateRequest
	if err := utils.BindJson(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	movie, err := m.catalog.UpdateMovie(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

func (m *MovieController) DeleteMovie(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if _, err := m.catalog.DeleteMovie(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Movie deleted successfully"})
}
