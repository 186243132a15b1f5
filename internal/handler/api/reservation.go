package api

import (
	"log/slog"
	"net/http"

	"restaurant-booking/internal/domain/reservation"
	reqdto "restaurant-booking/internal/handler/dto/request"
	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/handler/httperr"
	"restaurant-booking/internal/handler/validation"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// busyDateMessage answers writes that gave up waiting for the date lock.
// Nothing was changed, so the client may resend the same request.
const busyDateMessage = "La fecha seleccionada está ocupada por otra solicitud. Intente de nuevo."

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmd commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary List reservations
// @Description Listing with explicit lifecycle filter. The next page cursor, if any, is in X-Next-Cursor
// @Tags reservations
// @Produce json
// @Param status query string false "active | deleted | all" default(active)
// @Param date query string false "YYYY-MM-DD"
// @Param restaurant_id query string false "Restaurant ID"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {array} resdto.ReservationResponse
// @Header 200 {string} X-Next-Cursor "Cursor for the next page"
// @Failure 400 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	views, next, err := h.queries.List(c.Request.Context(), filter, q.Cursor(), q.Limit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if next != nil {
		c.Header(resdto.NextCursorHeader, next.After)
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Create reservation
// @Description Books a table if both the restaurant and the global daily capacity allow it
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	ctx := c.Request.Context()
	result, err := h.commands.Create(ctx, in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	view, err := h.queries.GetByID(ctx, result.ReservationID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/reservations/"+result.ReservationID.String())
	c.JSON(http.StatusCreated, resdto.ReservationCreatedResponse{
		ReservationResponse: *resdto.FromReservationView(view),
		Code:                result.Code,
	})
}

// @Summary Search reservations by client
// @Description Active reservations from today on matching dni and/or code
// @Tags reservations
// @Produce json
// @Param dni query string false "Customer DNI"
// @Param code query string false "Reservation code"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/search [get]
func (h *ReservationHandler) SearchReservations(c *gin.Context) {
	var q reqdto.SearchReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	views, err := h.queries.SearchByClient(c.Request.Context(), q.ToSearch())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Get reservation
// @Description Get an active reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Change reservation date
// @Description Requires the customer dni and reservation code
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Credential and new date"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id} [put]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.commands.UpdateDate(ctx, req.ToInput(id)); err != nil {
		h.handleError(c, err)
		return
	}

	view, err := h.queries.GetByID(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Soft deletes the reservation; requires the customer dni and reservation code
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ReservationCredentialRequest true "Credential"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.ReservationCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	if err := h.commands.SoftDelete(c.Request.Context(), req.ToInput(id)); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ReservationDeleted(id))
}

func (h *ReservationHandler) handleError(c *gin.Context, err error) {
	var capErr *reservation.CapacityExceededError
	switch {
	case errs.As(err, &capErr):
		httperr.AbortWithError(c, http.StatusBadRequest, err, capErr.Error(), nil)
	case errs.Is(err, commands.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, commands.ErrReservationNotFound.Error(), nil)
	case errs.Is(err, queries.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, queries.ErrReservationNotFound.Error(), nil)
	case errs.Is(err, commands.ErrRestaurantUnavailable):
		httperr.AbortWithError(c, http.StatusBadRequest, err, commands.ErrRestaurantUnavailable.Error(), nil)
	case errs.Is(err, queries.ErrSearchCriteriaRequired):
		httperr.AbortWithError(c, http.StatusBadRequest, err, queries.ErrSearchCriteriaRequired.Error(), nil)
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	case errs.Is(err, errs.ErrConflict):
		slog.WarnContext(c.Request.Context(), "reservation request conflicted", "error", err.Error())
		httperr.AbortWithError(c, http.StatusConflict, err, busyDateMessage, nil)
	default:
		slog.ErrorContext(c.Request.Context(), "reservation request failed", "error", err.Error(), "stack", errs.ExtractStackLines(err, 12))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
