package statistics

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	statistics "filmoasis/src/modules/statistics/models"
	"filmoasis/src/utils"
)

type Reporter interface {
	ComputeStatistics(ctx context.Context) (*statistics.StatisticsReport, error)
}

type StatisticsController struct {
	reporter Reporter
}

func NewStatisticsController(reporter Reporter) *StatisticsController {
	return &StatisticsController{reporter: reporter}
}

func (s *StatisticsController) GetStatistics(c *gin.Context) {
	report, err := s.reporter.ComputeStatistics(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
