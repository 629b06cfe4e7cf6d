package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lodgestay/internal/handler/api"
	"lodgestay/internal/handler/middleware"
	"lodgestay/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	reservationHandler *api.ReservationHandler,
	occupancyHandler *api.OccupancyHandler,
	roomHandler *api.RoomHandler,
	channelMiddleware *middleware.ChannelMiddleware,
) {
	setupMiddleware(engine, cfg, channelMiddleware)
	setupRoutes(engine, reservationHandler, occupancyHandler, roomHandler, channelMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, channelMiddleware *middleware.ChannelMiddleware) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
	engine.Use(channelMiddleware.ResolveChannel())
}

func setupRoutes(
	engine *gin.Engine,
	reservationHandler *api.ReservationHandler,
	occupancyHandler *api.OccupancyHandler,
	roomHandler *api.RoomHandler,
	channelMiddleware *middleware.ChannelMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
			})

			staffOnly := reservations.Group("")
			staffOnly.Use(channelMiddleware.RequireStaff())
			addRoutes(staffOnly, []route{
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: reservationHandler.ConfirmReservation},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: reservationHandler.CheckInReservation},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: reservationHandler.CompleteReservation},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: reservationHandler.CancelReservation},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: reservationHandler.ListRoomReservations},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: reservationHandler.ProbeAvailability},
			})
		}

		lodges := apiGroup.Group("/lodges")
		{
			addRoutes(lodges, []route{
				{Method: http.MethodGet, Path: "/:id/rooms", Handler: roomHandler.ListRooms},
			})

			staffOnly := lodges.Group("")
			staffOnly.Use(channelMiddleware.RequireStaff())
			addRoutes(staffOnly, []route{
				{Method: http.MethodGet, Path: "/:id/occupancy", Handler: occupancyHandler.MonthlyReport},
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
			h = chainHandlers(append(r.Mw, r.Handler)...)
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
