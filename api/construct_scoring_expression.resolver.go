package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type constructScoringExpressionRequest struct {
	UserInput string `json:"input"`
}

func (m ApiHandler) constructScoringExpression(c *gin.Context) {
	var requestBody constructScoringExpressionRequest

	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}
	if requestBody.UserInput == "" {
		returnErrorJsonCode(fmt.Errorf("input is required"), c, 400)
		return
	}
	if m.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("chatgpt api key is not configured"), c, 503)
		return
	}

	expression, err := m.GptRepository.ConstructScoringExpression(
		c.Request.Context(),
		requestBody.UserInput,
	)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, gin.H{
		"expression": expression,
	})
}
