package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type RankingRequest struct {
	Month             int      `json:"month"`
	Year              int      `json:"year"`
	Symbols           []string `json:"symbols"`
	ScoringExpression string   `json:"scoringExpression"`
}

func (m ApiHandler) ranking(c *gin.Context) {
	var requestBody RankingRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	if requestBody.Month < 1 || requestBody.Month > 12 {
		returnErrorJsonCode(fmt.Errorf("month must be between 1 and 12, got %d", requestBody.Month), c, 400)
		return
	}
	if requestBody.Year == 0 {
		returnErrorJsonCode(fmt.Errorf("year is required"), c, 400)
		return
	}

	ranked, err := m.RankingService.GetRanking(
		c.Request.Context(),
		requestBody.Month,
		requestBody.Year,
		requestBody.Symbols,
		requestBody.ScoringExpression,
	)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to rank stocks: %w", err), c)
		return
	}

	c.JSON(200, gin.H{
		"ranking": ranked,
	})
}
