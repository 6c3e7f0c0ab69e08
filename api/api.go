package api

import (
	"bytes"
	"database/sql"
	"fmt"
	"stockbacktest/internal"
	"stockbacktest/internal/app"
	"stockbacktest/internal/config"
	"stockbacktest/internal/logger"
	"stockbacktest/internal/repository"
	l2_service "stockbacktest/internal/service/l2"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	Db                   *sql.DB
	Config               *config.Config
	BacktestHandler      app.BacktestHandler
	OptimizeHandler      app.OptimizeHandler
	BenchmarkHandler     internal.BenchmarkHandler
	RankingService       l2_service.RankingService
	GptRepository        repository.GptRepository
	DailyQuoteRepository repository.DailyQuoteRepository
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to stockbacktest"})
	})
	router.POST("/backtest", m.backtest)
	router.POST("/ranking", m.ranking)
	router.POST("/benchmark", m.benchmark)
	router.POST("/optimize", m.optimize)
	router.POST("/constructScoringExpression", m.constructScoringExpression)
	router.POST("/updatePrices", m.adminOnly, m.updatePrices)

	return router
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.FromContext(c.Request.Context()).Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (m ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: ctx.Writer}
	ctx.Writer = w

	start := time.Now().UTC()
	ctx.Next()

	logger.FromContext(ctx.Request.Context()).Infow("api request",
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
		"ip", ctx.ClientIP(),
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
		"responseBytes", w.body.Len(),
	)
}
