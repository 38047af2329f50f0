package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/api/metrics"
	"github.com/farm2door/marketplace/internal/api/middleware"
	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
)

// ReservationHandler handles HTTP requests for the reservation flow.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create reserves a quantity of produce for the authenticated customer and
// computes the 30% deposit due.
//
// @Summary      Create a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  reservationResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return domain.NewUnauthorized("Authentication required")
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError(domain.FieldError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservation, err := h.service.Create(c.Request().Context(), ports.CreateReservationInput{
		CustomerID: identity.UserID,
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.ReservationsCreatedTotal.Inc()

	return respond(c, http.StatusCreated, toReservationResponse(reservation))
}

// Get returns a single reservation, visible to its customer, the farmer who
// owns the produce, and admins.
//
// @Summary      Get a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Reservation id"
// @Success      200  {object}  reservationResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /reservations/{id} [get]
func (h *ReservationHandler) Get(c echo.Context) error {
	reservation, err := h.service.Get(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toReservationResponse(reservation))
}

// List returns the reservations visible to the caller.
//
// @Summary      List reservations
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Param        limit   query  int     false  "Page size (1-100, default 20)"
// @Param        offset  query  int     false  "Items to skip"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /reservations [get]
func (h *ReservationHandler) List(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return err
	}

	status := domain.ReservationStatus(c.QueryParam("status"))

	result, err := h.service.List(c.Request().Context(), middleware.IdentityFrom(c), status, page)
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, toReservationResponses(result.Items), result.Total, result.Page)
}

// ConfirmDeposit records the customer's deposit payment and confirms the
// reservation.
//
// @Summary      Pay the reservation deposit
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Reservation id"
// @Param        body  body      confirmDepositRequest  true  "Deposit amount"
// @Success      200   {object}  reservationResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /reservations/{id}/deposit [post]
func (h *ReservationHandler) ConfirmDeposit(c echo.Context) error {
	var req confirmDepositRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError(domain.FieldError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservation, err := h.service.ConfirmDeposit(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), req.Amount)
	if err != nil {
		return err
	}
	metrics.ReservationStatusTotal.WithLabelValues(string(reservation.Status)).Inc()

	return respond(c, http.StatusOK, toReservationResponse(reservation))
}

// UpdateStatus applies a fulfilment transition. Farmer or admin only.
//
// @Summary      Update reservation status
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Reservation id"
// @Param        body  body      updateReservationStatusRequest  true  "Target status"
// @Success      200   {object}  reservationResponse
// @Failure      403   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /reservations/{id}/status [put]
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	var req updateReservationStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError(domain.FieldError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reservation, err := h.service.UpdateStatus(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), domain.ReservationStatus(req.Status))
	if err != nil {
		return err
	}
	metrics.ReservationStatusTotal.WithLabelValues(string(reservation.Status)).Inc()

	return respond(c, http.StatusOK, toReservationResponse(reservation))
}

// Cancel cancels a reservation and returns the reserved units to stock.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Reservation id"
// @Success      200  {object}  reservationResponse
// @Failure      403  {object}  map[string]any
// @Failure      409  {object}  map[string]any
// @Router       /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	reservation, err := h.service.Cancel(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	metrics.ReservationStatusTotal.WithLabelValues(string(reservation.Status)).Inc()

	return respond(c, http.StatusOK, toReservationResponse(reservation))
}
