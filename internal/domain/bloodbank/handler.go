package bloodbank

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/apiclient"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/blood-bank")
	g.POST("/donors", h.IngestDonor)
	g.POST("/donors/validate", h.ValidateDonor)
	g.POST("/forecast", h.Forecast)
	g.GET("/inventory", h.Inventory)
	g.POST("/optimize", h.Optimize)
	g.GET("/stock-level/:units", h.StockLevel)
}

func (h *Handler) IngestDonor(c echo.Context) error {
	var d DonorData
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.IngestDonor(c.Request().Context(), d)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, res)
}

// ValidateDonor checks a record locally without contacting the service.
func (h *Handler) ValidateDonor(c echo.Context) error {
	var d DonorData
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	_, problems := CheckDonor(d, h.svc.now())
	if problems == nil {
		problems = []string{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":    len(problems) == 0,
		"problems": problems,
	})
}

func (h *Handler) Forecast(c echo.Context) error {
	var req ForecastRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.Forecast(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) Inventory(c echo.Context) error {
	rows, err := h.svc.Inventory(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Optimize(c echo.Context) error {
	res, err := h.svc.Optimize(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) StockLevel(c echo.Context) error {
	units, err := strconv.Atoi(c.Param("units"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "units must be an integer")
	}
	return c.JSON(http.StatusOK, StockLevelFor(units))
}

func httpError(err error) *echo.HTTPError {
	return echo.NewHTTPError(apiclient.HTTPStatus(err), apiclient.Describe(err))
}
