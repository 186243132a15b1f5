package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"restaurant-booking/internal/domain/user"
	"restaurant-booking/internal/handler/api"
	"restaurant-booking/internal/handler/middleware"
	"restaurant-booking/internal/handler/validation"
	"restaurant-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type handlers struct {
	Auth        *api.AuthHandler
	Reservation *api.ReservationHandler
	Restaurant  *api.RestaurantHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	logger *middleware.Logger,
	authHandler *api.AuthHandler,
	reservationHandler *api.ReservationHandler,
	restaurantHandler *api.RestaurantHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	validation.Register()
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers{
		Auth:        authHandler,
		Reservation: reservationHandler,
		Restaurant:  restaurantHandler,
	}, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	adminOnly := []gin.HandlerFunc{authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin)}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me, Mw: []gin.HandlerFunc{authMiddleware.RequireAuth()}},
			})
		}

		// Customers act on their own bookings with the dni + code credential.
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListReservations},
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.CreateReservation},
				{Method: http.MethodGet, Path: "/search", Handler: h.Reservation.SearchReservations},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.GetReservation},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Reservation.UpdateReservation},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Reservation.DeleteReservation},
			})
		}

		restaurants := apiGroup.Group("/restaurants")
		{
			addRoutes(restaurants, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Restaurant.ListRestaurants},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Restaurant.GetRestaurant},
				{Method: http.MethodPost, Path: "", Handler: h.Restaurant.CreateRestaurant, Mw: adminOnly},
				{Method: http.MethodPut, Path: "/:id", Handler: h.Restaurant.UpdateRestaurant, Mw: adminOnly},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Restaurant.DeleteRestaurant, Mw: adminOnly},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

// chainHandlers runs hs in order inside a single gin handler. Middleware in
// the chain must not rely on c.Next() reaching the remaining handlers.
func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
