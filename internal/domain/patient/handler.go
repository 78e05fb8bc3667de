package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
)

// Handler exposes one patient Store to a local UI.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/patient")
	g.GET("", h.GetState)
	g.POST("/refresh", h.Refresh)
	g.DELETE("/error", h.DismissError)
	g.GET("/chats", h.ListChats)
	g.POST("/chats", h.CreateChat)
	g.POST("/chats/:chatId/select", h.SelectChat)
	g.POST("/chats/:chatId/messages", h.SendMessage)
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/upcoming", h.UpcomingAppointments)
	g.POST("/appointments", h.RequestAppointment)
	g.POST("/feedback", h.SubmitFeedback)
}

func (h *Handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Snapshot())
}

// DismissError empties the error slot and returns the new snapshot.
func (h *Handler) DismissError(c echo.Context) error {
	h.store.ClearErr()
	return c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *Handler) Refresh(c echo.Context) error {
	if err := h.store.RefreshData(c.Request().Context()); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, h.store.Snapshot())
}

func (h *Handler) ListChats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Chats())
}

func (h *Handler) CreateChat(c echo.Context) error {
	var req NewChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	chat, err := h.store.CreateNewChat(c.Request().Context(), req.ChatName)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, chat)
}

func (h *Handler) SelectChat(c echo.Context) error {
	chat, err := h.store.SelectChat(c.Param("chatId"))
	if errors.Is(err, ErrChatNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "chat not found")
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, chat)
}

func (h *Handler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	msg, err := h.store.SendMessage(c.Request().Context(), c.Param("chatId"), req.Query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, msg)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Appointments())
}

func (h *Handler) UpcomingAppointments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.UpcomingAppointments())
}

func (h *Handler) RequestAppointment(c echo.Context) error {
	var req AppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.store.RequestAppointment(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) SubmitFeedback(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.store.SubmitFeedback(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, f)
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apiclient.HTTPStatus(err), apiclient.Describe(err))
}
