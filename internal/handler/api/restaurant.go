package api

import (
	"log/slog"
	"net/http"

	reqdto "restaurant-booking/internal/handler/dto/request"
	resdto "restaurant-booking/internal/handler/dto/response"
	"restaurant-booking/internal/handler/httperr"
	"restaurant-booking/internal/handler/validation"
	"restaurant-booking/internal/pkg/errs"
	"restaurant-booking/internal/usecase/commands"
	"restaurant-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	commands commands.RestaurantCommands
	queries  queries.RestaurantQueries
}

func NewRestaurantHandler(cmd commands.RestaurantCommands, q queries.RestaurantQueries) *RestaurantHandler {
	return &RestaurantHandler{
		commands: cmd,
		queries:  q,
	}
}

// @Summary List restaurants
// @Description Active, non-deleted restaurants filtered by city substring and/or name initial
// @Tags restaurants
// @Produce json
// @Param city query string false "City (case-insensitive substring)"
// @Param letter query string false "Name initial (case-insensitive)"
// @Success 200 {array} resdto.RestaurantResponse
// @Failure 400 {object} httperr.Response
// @Router /restaurants [get]
func (h *RestaurantHandler) ListRestaurants(c *gin.Context) {
	var q reqdto.ListRestaurantsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	views, err := h.queries.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRestaurantViews(views))
}

// @Summary Get restaurant
// @Tags restaurants
// @Produce json
// @Param id path string true "Restaurant ID"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{id} [get]
func (h *RestaurantHandler) GetRestaurant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRestaurantView(view))
}

// @Summary Create restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRestaurantRequest true "Restaurant"
// @Success 201 {object} resdto.RestaurantResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /restaurants [post]
func (h *RestaurantHandler) CreateRestaurant(c *gin.Context) {
	var req reqdto.CreateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	ctx := c.Request.Context()
	id, err := h.commands.Create(ctx, req.ToInput())
	if err != nil {
		h.handleError(c, err)
		return
	}

	view, err := h.queries.GetByID(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", "/api/restaurants/"+id.String())
	c.JSON(http.StatusCreated, resdto.FromRestaurantView(view))
}

// @Summary Update restaurant
// @Description Partial update; omitted fields keep their value
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Param request body reqdto.UpdateRestaurantRequest true "Fields to change"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{id} [put]
func (h *RestaurantHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", validation.Details(err))
		return
	}

	ctx := c.Request.Context()
	if err := h.commands.Update(ctx, id, req.ToInput()); err != nil {
		h.handleError(c, err)
		return
	}

	view, err := h.queries.GetByID(ctx, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRestaurantView(view))
}

// @Summary Delete restaurant
// @Description Soft delete; the restaurant also becomes inactive
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Param id path string true "Restaurant ID"
// @Success 200 {object} resdto.MessageResponse
// @Failure 404 {object} httperr.Response
// @Router /restaurants/{id} [delete]
func (h *RestaurantHandler) DeleteRestaurant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.RestaurantDeleted(id))
}

func (h *RestaurantHandler) handleError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, commands.ErrRestaurantNotFound), errs.Is(err, queries.ErrRestaurantNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, queries.ErrRestaurantNotFound.Error(), nil)
	case errs.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	case errs.Is(err, errs.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Concurrent update conflict, try again", nil)
	default:
		slog.ErrorContext(c.Request.Context(), "restaurant request failed", "error", err.Error(), "stack", errs.ExtractStackLines(err, 12))
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
