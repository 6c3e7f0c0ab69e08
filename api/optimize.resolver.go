package api

import (
	"fmt"
	"stockbacktest/internal/app"
	"time"

	"github.com/gin-gonic/gin"
)

// maxTrialsPerRequest keeps a single request from holding the connection
// open for an unbounded parameter sweep. Long studies belong in the CLI.
const maxTrialsPerRequest = 100

type OptimizeRequest struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	StudyName string `json:"studyName"`
	NumTrials int    `json:"numTrials"`
}

func (m ApiHandler) optimize(c *gin.Context) {
	var requestBody OptimizeRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	start, err := time.Parse("2006-01-02", requestBody.Start)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	end, err := time.Parse("2006-01-02", requestBody.End)
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if end.Before(start) {
		returnErrorJsonCode(fmt.Errorf("end date cannot be before start date"), c, 400)
		return
	}

	studyName := requestBody.StudyName
	if studyName == "" {
		studyName = m.Config.Optimizer.StudyName
	}
	numTrials := requestBody.NumTrials
	if numTrials <= 0 {
		numTrials = m.Config.Optimizer.Trials
	}
	if numTrials > maxTrialsPerRequest {
		numTrials = maxTrialsPerRequest
	}

	baseParams, err := m.Config.DefaultBacktestParams()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	best, err := m.OptimizeHandler.Optimize(c.Request.Context(), app.OptimizeInput{
		StudyName:    studyName,
		Start:        start,
		End:          end,
		NumTrials:    numTrials,
		Seed:         m.Config.Optimizer.Seed,
		RiskFreeRate: m.Config.RiskFreeRate,
		BaseParams:   baseParams,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to optimize parameters: %w", err), c)
		return
	}

	c.JSON(200, gin.H{
		"bestTrial": best,
	})
}
