package doctors

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const defaultSearchLimit = 25

type Handler struct {
	client *Client
	logger zerolog.Logger
}

func NewHandler(client *Client, logger zerolog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.Search)
}

func (h *Handler) Search(c echo.Context) error {
	params := SearchParams{
		PostalCode:   c.QueryParam("postal_code"),
		Specialty:    c.QueryParam("specialty"),
		TaxonomyCode: c.QueryParam("taxonomy_code"),
		Limit:        defaultSearchLimit,
	}
	if params.PostalCode == "" && params.Specialty == "" && params.TaxonomyCode == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "postal_code, specialty or taxonomy_code is required")
	}
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		params.Limit = n
	}

	doctors, err := h.client.Search(c.Request().Context(), params)
	if err != nil {
		h.logger.Error().Err(err).Msg("registry search failed")
		return echo.NewHTTPError(http.StatusBadGateway, "doctor search is unavailable")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"doctors": doctors})
}
