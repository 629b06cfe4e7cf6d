package api

import (
	"errors"
	"net/http"

	"lodgestay/internal/domain/reservation"
	reqdto "lodgestay/internal/handler/dto/request"
	resdto "lodgestay/internal/handler/dto/response"
	"lodgestay/internal/handler/httperr"
	"lodgestay/internal/handler/middleware"
	"lodgestay/internal/usecase/commands"
	"lodgestay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
	availabilityQueries queries.AvailabilityQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
	availabilityQueries queries.AvailabilityQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Create reservation
// @Description Reserve a room for a stay period; the rate mode may be auto-selected
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.CreateReservationResponse
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]any
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	input := req.ToInput(middleware.GetChannel(c))

	result, err := h.reservationCommands.Reserve(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
		case errors.Is(err, commands.ErrInvalidInput):
			var fieldErr *commands.InvalidInputError
			if errors.As(err, &fieldErr) {
				httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation request", gin.H{
					"field":  fieldErr.Field,
					"reason": fieldErr.Reason,
				})
				return
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation request", nil)
		case errors.Is(err, commands.ErrUnavailable):
			var conflict *commands.ConflictError
			if errors.As(err, &conflict) {
				httperr.AbortWithError(c, http.StatusConflict, err, "Room unavailable for the requested period", gin.H{
					"reservationId": conflict.ReservationID,
					"checkIn":       conflict.CheckIn,
					"checkOut":      conflict.CheckOut,
				})
				return
			}
			httperr.AbortWithError(c, http.StatusConflict, err, "Room unavailable for the requested period", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Header("Location", "/api/reservations/"+result.ReservationID.String())
	c.JSON(http.StatusCreated, resdto.FromReserveResult(result))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List room reservations
// @Description List reservations of a room, newest first, keyset-paginated
// @Tags reservations
// @Produce json
// @Param id path string true "Room ID"
// @Param after query string false "Pagination cursor"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/{id}/reservations [get]
func (h *ReservationHandler) ListRoomReservations(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.ListReservationsRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid query parameters", nil)
		return
	}

	var after *queries.Cursor
	if req.After != "" {
		after = &queries.Cursor{After: req.After}
	}

	items, next, err := h.reservationQueries.ListByRoom(c.Request.Context(), roomID, after, req.Limit)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary Probe availability
// @Description Check whether a room is free for an interval; advisory only
// @Tags reservations
// @Produce json
// @Param id path string true "Room ID"
// @Param check_in query string true "Check-in (RFC 3339)"
// @Param check_out query string true "Check-out (RFC 3339)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *ReservationHandler) ProbeAvailability(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.AvailabilityProbeRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "check_in and check_out are required RFC 3339 timestamps", nil)
		return
	}

	view, err := h.availabilityQueries.Probe(c.Request.Context(), roomID, req.CheckIn, req.CheckOut)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidProbePeriod) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "check_out must be after check_in", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Confirm reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Router /reservations/{id}/confirm [post]
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	h.transition(c, reservation.StatusConfirmed)
}

// @Summary Check in reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Router /reservations/{id}/check-in [post]
func (h *ReservationHandler) CheckInReservation(c *gin.Context) {
	h.transition(c, reservation.StatusCheckedIn)
}

// @Summary Complete reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Router /reservations/{id}/complete [post]
func (h *ReservationHandler) CompleteReservation(c *gin.Context) {
	h.transition(c, reservation.StatusCompleted)
}

// @Summary Cancel reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	h.transition(c, reservation.StatusCancelled)
}

func (h *ReservationHandler) transition(c *gin.Context, to reservation.Status) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := h.reservationCommands.Transition(c.Request.Context(), id, to); err != nil {
		switch {
		case errors.Is(err, commands.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, commands.ErrTransitionNotAllowed):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Status transition not allowed", nil)
		case errors.Is(err, commands.ErrTransitionRaced):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation status changed concurrently, retry", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
