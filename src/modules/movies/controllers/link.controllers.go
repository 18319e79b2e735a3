package movies

import (
	"net/http"

	"github.com/gin-gonic/gin"

	lib "filmoasis/src/modules/movies/lib"
	"filmoasis/src/utils"
)

// movieID resolves the :id parameter and checks that the movie exists.
func (m *MovieController) movieID(c *gin.Context) (int64, bool) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return 0, false
	}
	if _, err := m.catalog.GetMovie(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return 0, false
	}
	return id, true
}

func (m *MovieController) ListLinks(c *gin.Context) {
	id, ok := m.movieID(c)
	if !ok {
		return
	}

	links, err := m.catalog.ListMovieLinks(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib.Classify(links))
}

func (m *MovieController) AddLink(c *gin.Context) {
	id, ok := m.movieID(c)
	if !ok {
		return
	}

	var req lib.LinkCreateRequest
	if err := utils.BindJson(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	link, err := m.catalog.AddMovieLink(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

// ReplaceLinks swaps the movie's whole link set atomically.
func (m *MovieController) ReplaceLinks(c *gin.Context) {
	id, ok := m.movieID(c)
	if !ok {
		return
	}

	var req lib.LinksReplaceRequest
	if err := utils.BindJson(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	links, err := m.catalog.ReplaceMovieLinks(c.Request.Context(), id, req.Links(id))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lib.Classify(links))
}

func (m *MovieController) DeleteLink(c *gin.Context) {
	id, ok := m.movieID(c)
	if !ok {
		return
	}

	linkID, err := utils.ParamID(c, "linkId")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if _, err := m.catalog.DeleteMovieLink(c.Request.Context(), id, linkID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted successfully"})
}
