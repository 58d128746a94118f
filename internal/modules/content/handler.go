package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkwell-app/inkwell/internal/pkg/response"
)

type Handler struct {
	svc         *Service
	recentLimit int
	logger      *zap.Logger
}

func NewHandler(svc *Service, recentLimit int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, recentLimit: recentLimit, logger: logger}
}

// RegisterRoutes mounts the page and the two operation endpoints.
// limitMW may be nil.
func (h *Handler) RegisterRoutes(r gin.IRoutes, limitMW gin.HandlerFunc) {
	r.GET("/", h.index)

	chain := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if limitMW == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{limitMW, handler}
	}
	r.POST("/generate/", chain(h.generate)...)
	r.POST("/analyze/", chain(h.analyze)...)
}

// GET /
func (h *Handler) index(c *gin.Context) {
	articles, err := h.svc.RecentArticles(c.Request.Context(), h.recentLimit)
	if err != nil {
		h.logger.Warn("load recent articles", zap.Error(err))
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Articles": articles,
	})
}

// POST /generate/
func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	text, err := h.svc.Generate(c.Request.Context(), *req.Topic)
	if err != nil {
		response.OK(c, GenerateResponse{GeneratedText: GenerationFailureMessage(err), Success: false})
		return
	}
	response.OK(c, GenerateResponse{GeneratedText: text, Success: true})
}

// POST /analyze/
func (h *Handler) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), *req.Content)
	if err != nil {
		response.OK(c, AnalyzeResponse{
			Readability: msgAnalysisFailed,
			Sentiment:   msgAnalysisFailed,
			Success:     false,
		})
		return
	}
	response.OK(c, AnalyzeResponse{
		Readability: result.Readability,
		Sentiment:   result.Sentiment,
		Success:     true,
	})
}
