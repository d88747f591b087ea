package router

import (
	"parking_manager/handler"
	"parking_manager/middleware"
	"parking_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", middleware.Protected(), handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	profile := v1.Group("/profile", logger.New())
	profile.Get("/", middleware.Protected(), handler.GetProfile)
	profile.Put("/", middleware.Protected(), validate.EditProfile(), handler.EditProfile)

	vehicle := v1.Group("/vehicle", logger.New())
	vehicle.Get("/", middleware.Protected(), handler.GetVehicles)
	vehicle.Post("/", middleware.Protected(), validate.CreateVehicle(), handler.CreateVehicle)
	vehicle.Put("/:vehicleId", middleware.Protected(), validate.EditVehicle("vehicleId"), handler.EditVehicle)
	vehicle.Delete("/:vehicleId", middleware.Protected(), validate.GetById("vehicleId"), handler.DeleteVehicle)

	lot := v1.Group("/lot", logger.New())
	lot.Get("/", middleware.Protected(), handler.GetLots)
	lot.Get("/:lotId", middleware.Protected(), handler.GetLotById)
	lot.Post("/", middleware.Protected(), validate.CreateLot(), handler.CreateLot)
	lot.Put("/:lotId", middleware.Protected(), validate.EditLot("lotId"), handler.EditLot)
	lot.Delete("/:lotId", middleware.Protected(), handler.DeleteLot)
	lot.Get("/:lotId/spots", middleware.Protected(), handler.GetSpotsByLot)
	lot.Post("/:lotId/book", middleware.Protected(), validate.BookSpot("lotId"), handler.BookSpot)

	spot := v1.Group("/spot", logger.New())
	spot.Delete("/:spotId", middleware.Protected(), handler.DeleteSpot)

	reservation := v1.Group("/reservation", logger.New())
	reservation.Get("/history", middleware.Protected(), handler.ParkingHistory)
	reservation.Post("/:reservationId/release", middleware.Protected(), handler.ReleaseReservation)
	reservation.Get("/:code/qr", middleware.Protected(), handler.ReservationQR)

	admin := v1.Group("/admin", logger.New())
	admin.Get("/users", middleware.Protected(), handler.GetUsers)

	statistic := v1.Group("/statistic", logger.New())
	statistic.Get("/", middleware.Protected(), handler.GetAdminSummary)
	statistic.Get("/me", middleware.Protected(), handler.GetUserSummary)

	v1.Get("/lot/ws/:lotId", websocket.New(handler.LotAvailabilityWebsocket))

	// Public, read-only
	app.Get("/api/parking_lot", handler.GetPublicLots)
	app.Get("/api/parking_lot/:slug", handler.GetPublicLotBySlug)
}
