package api

import (
	"fmt"
	"stockbacktest/internal"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) updatePrices(c *gin.Context) {
	ctx := c.Request.Context()

	tx, err := m.Db.BeginTx(ctx, nil)
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to create transaction: %w", err), c)
		return
	}
	defer tx.Rollback()

	// Seed the benchmark symbol so a fresh database has at least one
	// series for the refresh to walk.
	seeds := []string{m.Config.BenchmarkSymbol}
	if err := internal.UpdateQuotedPrices(ctx, tx, seeds, m.DailyQuoteRepository); err != nil {
		returnErrorJson(err, c)
		return
	}

	if err := tx.Commit(); err != nil {
		returnErrorJson(fmt.Errorf("failed to commit transaction: %w", err), c)
		return
	}

	c.JSON(200, gin.H{
		"message": "ok",
	})
}
