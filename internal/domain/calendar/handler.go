package calendar

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/caresched/caresched/internal/platform/auth"
)

type Handler struct {
	svc   *Service
	flows *FlowManager
}

func NewHandler(svc *Service, flows *FlowManager) *Handler {
	return &Handler{svc: svc, flows: flows}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/calendar/slots", h.ListSlots)
	api.GET("/calendar/categories", h.ListCategories)
	api.GET("/calendar/events", h.ListEvents)
	api.POST("/calendar/events", h.CreateEvent)
	api.GET("/calendar/events/:id", h.GetEvent)
	api.PUT("/calendar/events/:id", h.UpdateEvent)
	api.DELETE("/calendar/events/:id", h.DeleteEvent)

	api.POST("/calendar/flows", h.StartFlow)
	api.GET("/calendar/flows/:id", h.GetFlow)
	api.POST("/calendar/flows/:id/date", h.FlowSelectDate)
	api.POST("/calendar/flows/:id/slot", h.FlowSelectSlot)
	api.POST("/calendar/flows/:id/category", h.FlowSelectCategory)
	api.POST("/calendar/flows/:id/cancel", h.FlowCancel)
}

func userID(c echo.Context) string {
	return auth.UserIDFromContext(c.Request().Context())
}

// httpError maps domain sentinels onto status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrFlowNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrFlowBusy), errors.Is(err, ErrInvalidStep):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
}

// ListSlots serves both presentations of slot availability: view=open omits
// taken slots, view=all keeps them with a taken flag.
func (h *Handler) ListSlots(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	doctorNPI := c.QueryParam("doctor_npi")

	switch c.QueryParam("view") {
	case "", "open":
		slots, err := h.svc.AvailableSlots(c.Request().Context(), userID(c), date, doctorNPI)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"slots": slots})
	case "all":
		board, err := h.svc.SlotBoard(c.Request().Context(), userID(c), date, doctorNPI)
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"slots": board})
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "view must be open or all")
	}
}

func (h *Handler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"categories": Categories()})
}

func (h *Handler) ListEvents(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	events, err := h.svc.EventsByDate(c.Request().Context(), userID(c), date)
	if err != nil {
		return httpError(err)
	}
	if events == nil {
		events = []*Event{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"events": events})
}

type createEventRequest struct {
	Date        string         `json:"date"`
	TimeSlot    string         `json:"time_slot"`
	TaskType    string         `json:"task_type"`
	Description string         `json:"description"`
	Doctor      *DoctorContext `json:"doctor,omitempty"`
}

func (h *Handler) CreateEvent(c echo.Context) error {
	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	event, err := h.svc.Schedule(c.Request().Context(), ScheduleRequest{
		UserID:      userID(c),
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		TaskType:    req.TaskType,
		Description: req.Description,
		Doctor:      req.Doctor,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *Handler) GetEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	event, err := h.svc.GetEvent(c.Request().Context(), userID(c), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *Handler) UpdateEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var e Event
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	e.ID = id
	e.UserID = userID(c)
	if err := h.svc.UpdateEvent(c.Request().Context(), &e); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteEvent returns 204 even when the record is already gone.
func (h *Handler) DeleteEvent(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), userID(c), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type startFlowRequest struct {
	Doctor *DoctorContext `json:"doctor,omitempty"`
}

func (h *Handler) StartFlow(c echo.Context) error {
	var req startFlowRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, h.flows.Start(userID(c), req.Doctor))
}

func (h *Handler) flowID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid flow id")
	}
	return id, nil
}

func (h *Handler) GetFlow(c echo.Context) error {
	id, err := h.flowID(c)
	if err != nil {
		return err
	}
	f, err := h.flows.Get(id, userID(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) FlowSelectDate(c echo.Context) error {
	id, err := h.flowID(c)
	if err != nil {
		return err
	}
	var req struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.flows.SelectDate(c.Request().Context(), id, userID(c), req.Date)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) FlowSelectSlot(c echo.Context) error {
	id, err := h.flowID(c)
	if err != nil {
		return err
	}
	var req struct {
		Slot string `json:"slot"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.flows.SelectSlot(id, userID(c), req.Slot)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) FlowSelectCategory(c echo.Context) error {
	id, err := h.flowID(c)
	if err != nil {
		return err
	}
	var req struct {
		Category string `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	event, f, err := h.flows.SelectCategory(c.Request().Context(), id, userID(c), req.Category)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"event": event, "flow": f})
}

func (h *Handler) FlowCancel(c echo.Context) error {
	id, err := h.flowID(c)
	if err != nil {
		return err
	}
	var req struct {
		Mode string `json:"mode"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.flows.Cancel(id, userID(c), req.Mode)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, f)
}
