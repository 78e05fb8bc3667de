package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
	"github.com/hms/hms/pkg/pagination"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/admin")
	g.GET("", h.GetDashboard)
	g.POST("/refresh", h.Refresh)
	g.DELETE("/error", h.DismissError)

	g.GET("/doctors", h.ListDoctors)
	g.POST("/doctors", h.CreateDoctor)
	g.PUT("/doctors/:id", h.UpdateDoctor)

	g.GET("/patients", h.ListPatients)
	g.PUT("/patients/:id", h.UpdatePatient)

	g.GET("/feedback", h.ListFeedback)
	g.GET("/feedback/analytics", h.FeedbackAnalytics)

	g.GET("/notifications", h.ListNotifications)
	g.POST("/notifications", h.SendNotification)

	g.POST("/appointments/:id/accept", h.AcceptAppointment)
}

func (h *Handler) GetDashboard(c echo.Context) error {
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

// -- Doctor --

func (h *Handler) ListDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, pagination.Page(h.store.Doctors(), pagination.FromContext(c)))
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var in DoctorInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.store.AddDoctor(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	var in DoctorInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.store.UpdateDoctor(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// -- Patient --

func (h *Handler) ListPatients(c echo.Context) error {
	return c.JSON(http.StatusOK, pagination.Page(h.store.Patients(), pagination.FromContext(c)))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var in PatientInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := h.store.UpdatePatient(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// -- Feedback --

func (h *Handler) ListFeedback(c echo.Context) error {
	return c.JSON(http.StatusOK, pagination.Page(h.store.Feedback(), pagination.FromContext(c)))
}

func (h *Handler) FeedbackAnalytics(c echo.Context) error {
	snap := h.store.Snapshot()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":          len(snap.Feedback),
		"sentiment":      snap.Sentiment,
		"categories":     snap.Categories,
		"average_rating": snap.AverageRating,
	})
}

// -- Notification --

func (h *Handler) ListNotifications(c echo.Context) error {
	return c.JSON(http.StatusOK, pagination.Page(h.store.Notifications(), pagination.FromContext(c)))
}

func (h *Handler) SendNotification(c echo.Context) error {
	var in NotificationInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	n, err := h.store.SendNotification(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, n)
}

// -- Appointment --

func (h *Handler) AcceptAppointment(c echo.Context) error {
	if err := h.store.AcceptAppointment(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apiclient.HTTPStatus(err), apiclient.Describe(err))
}
