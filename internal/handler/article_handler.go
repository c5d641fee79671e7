package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"easyfindshub/internal/model"
	"easyfindshub/internal/service"
)

// ArticleHandler serves the published articles landing view.
type ArticleHandler struct {
	articleService service.ArticleService
}

// NewArticleHandler creates a new article handler.
func NewArticleHandler(articleService service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ArticleListResponse wraps a page of articles.
type ArticleListResponse struct {
	Articles []model.Article `json:"articles"`
	Count    int             `json:"count"`
}

// List godoc
// @Summary List published articles, newest first
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} ArticleListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return invalidRequest("limit must be a non-negative integer")
		}
		limit = n
	}

	articles, err := h.articleService.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	if articles == nil {
		articles = []model.Article{}
	}
	return c.JSON(http.StatusOK, ArticleListResponse{Articles: articles, Count: len(articles)})
}

// Get godoc
// @Summary Get a published article
// @Tags articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} model.Article
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return invalidRequest("invalid article id")
	}

	article, err := h.articleService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}
