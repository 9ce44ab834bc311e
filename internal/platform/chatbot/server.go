package chatbot

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type messageRequest struct {
	Message string `json:"message"`
}

type replyResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the single proxy endpoint.
type Handler struct {
	client *Client
	logger zerolog.Logger
}

func NewHandler(client *Client, logger zerolog.Logger) *Handler {
	return &Handler{client: client, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	e.POST("/openai", h.Chat)
}

// Chat proxies one user message to the upstream model. Upstream failures are
// answered with an error body rather than a bare status so clients always
// get JSON.
func (h *Handler) Chat(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "message is required"})
	}

	reply, err := h.client.Reply(c.Request().Context(), req.Message)
	if err != nil {
		h.logger.Error().Err(err).Msg("chat completion failed")
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to get a reply"})
	}

	return c.JSON(http.StatusOK, replyResponse{Reply: reply})
}

// NewServer builds the standalone echo instance for the chatbot port.
func NewServer(client *Client, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.CORS())

	NewHandler(client, logger).Register(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	return e
}
