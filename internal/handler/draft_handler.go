package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"easyfindshub/internal/editor"
	"easyfindshub/internal/service"
)

// DraftHandler exposes the session's article form.
type DraftHandler struct {
	draftService service.DraftService
}

// NewDraftHandler creates a new draft handler.
func NewDraftHandler(draftService service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Get godoc
// @Summary Current draft
// @Tags draft
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DraftState
// @Failure 401 {object} errors.ErrorResponse
// @Router /draft [get]
func (h *DraftHandler) Get(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.draftService.Get(session.ID))
}

// Update godoc
// @Summary Change draft fields
// @Description Only the fields present in the body are changed. Nothing is validated until submit.
// @Tags draft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.DraftPatch true "Changed fields"
// @Success 200 {object} service.DraftState
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /draft [patch]
func (h *DraftHandler) Update(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var patch service.DraftPatch
	if err := c.Bind(&patch); err != nil {
		return invalidRequest("invalid request body")
	}
	return c.JSON(http.StatusOK, h.draftService.UpdateFields(session.ID, patch))
}

// Discard godoc
// @Summary Throw the draft away
// @Tags draft
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /draft [delete]
func (h *DraftHandler) Discard(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	h.draftService.Discard(session.ID)
	return c.NoContent(http.StatusNoContent)
}

// StageImage godoc
// @Summary Stage the cover image
// @Description Any file is accepted. The preview becomes available once it has been read.
// @Tags draft
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Cover image"
// @Success 200 {object} service.DraftState
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Router /draft/image [post]
func (h *DraftHandler) StageImage(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return invalidRequest("image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	return c.JSON(http.StatusOK, h.draftService.StageImage(session.ID, fh.Filename, data))
}

// ClearImage godoc
// @Summary Remove the staged cover image
// @Tags draft
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DraftState
// @Failure 401 {object} errors.ErrorResponse
// @Router /draft/image [delete]
func (h *DraftHandler) ClearImage(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.draftService.ClearImage(session.ID))
}

// Command godoc
// @Summary Run an editor command
// @Tags draft
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body editor.Command true "Editor command"
// @Success 200 {object} service.EditorState
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /draft/editor [post]
func (h *DraftHandler) Command(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	var cmd editor.Command
	if err := c.Bind(&cmd); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(&cmd); err != nil {
		return invalidRequest(err.Error())
	}

	state, err := h.draftService.ApplyEditorCommand(session.ID, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, state)
}

// Preview godoc
// @Summary Render the draft as it would be published
// @Tags draft
// @Produce html
// @Security BearerAuth
// @Param wait query bool false "Wait for a staged image preview to finish reading"
// @Success 200 {string} string
// @Failure 401 {object} errors.ErrorResponse
// @Router /draft/preview [get]
func (h *DraftHandler) Preview(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	if wait, _ := strconv.ParseBool(c.QueryParam("wait")); wait {
		if err := h.draftService.WaitImage(c.Request().Context(), session.ID); err != nil {
			return err
		}
	}

	html, err := h.draftService.Preview(session.ID)
	if err != nil {
		return err
	}
	return c.HTML(http.StatusOK, html)
}

// Submit godoc
// @Summary Validate and publish the draft
// @Tags draft
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.Article
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /draft/submit [post]
func (h *DraftHandler) Submit(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return err
	}

	article, err := h.draftService.Submit(c.Request().Context(), session.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}
