package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kanbanhq/taskboard/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

type createActivityRequest struct {
	Action  string `json:"action" validate:"required"`
	Details string `json:"details"`
	TaskID  string `json:"task_id"`
}

// List returns the newest activity entries of a project, most recent first.
//
// @Summary      List project activity
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {array}   domain.Activity
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id}/activities [get]
func (h *ActivityHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	activities, err := h.service.List(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activities)
}

// Create records a caller-supplied activity entry.
//
// @Summary      Record a project activity
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Project id"
// @Param        body  body      createActivityRequest  true  "Activity details"
// @Success      201   {object}  domain.Activity
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /projects/{id}/activities [post]
func (h *ActivityHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	activity, err := h.service.Create(c.Request().Context(), ports.RecordActivityInput{
		ProjectID: c.Param("id"),
		TaskID:    req.TaskID,
		UserID:    userID,
		Action:    req.Action,
		Details:   req.Details,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, activity)
}
