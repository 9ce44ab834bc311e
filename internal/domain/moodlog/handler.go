package moodlog

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/caresched/caresched/internal/platform/auth"
	"github.com/caresched/caresched/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/moodlogs", h.List)
	api.POST("/moodlogs", h.Create)
	api.GET("/moodlogs/:id", h.Get)
	api.PUT("/moodlogs/:id", h.Update)
	api.DELETE("/moodlogs/:id", h.Delete)
}

func userID(c echo.Context) string {
	return auth.UserIDFromContext(c.Request().Context())
}

type createRequest struct {
	Date     string   `json:"date"`
	Mood     string   `json:"mood"`
	Symptoms []string `json:"symptoms"`
	Note     string   `json:"note"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.Create(c.Request().Context(), CreateRequest{
		UserID:   userID(c),
		Date:     req.Date,
		Mood:     req.Mood,
		Symptoms: req.Symptoms,
		Note:     req.Note,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := h.svc.Get(c.Request().Context(), userID(c), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

type updateRequest struct {
	Mood     string   `json:"mood"`
	Symptoms []string `json:"symptoms"`
	Note     string   `json:"note"`
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m, err := h.svc.Update(c.Request().Context(), userID(c), id, UpdateRequest{
		Mood:     req.Mood,
		Symptoms: req.Symptoms,
		Note:     req.Note,
	})
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, m)
}

// Delete returns 204 even when the entry is already gone.
func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), userID(c), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the user's entries newest first, paginated after the sort so
// pages stay stable across fetches.
func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), userID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	p := pagination.FromContext(c)
	total := len(items)
	page := []*MoodLog{}
	if p.Offset < total {
		end := p.Offset + p.Limit
		if end > total {
			end = total
		}
		page = items[p.Offset:end]
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, p.Limit, p.Offset))
}
