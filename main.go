package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Razzsha/quickcart-team/internal/config"
	"github.com/Razzsha/quickcart-team/internal/database"
	"github.com/Razzsha/quickcart-team/internal/handlers"
	"github.com/Razzsha/quickcart-team/internal/middleware"
	"github.com/Razzsha/quickcart-team/internal/notifier"
	"github.com/Razzsha/quickcart-team/internal/session"
)

func buildTransport() notifier.Transport {
	if config.AppEnv.NotifyTransport == "twilio" {
		transport, err := notifier.NewTwilioTransport(
			config.AppEnv.TwilioSID,
			config.AppEnv.TwilioToken,
			config.AppEnv.TwilioFrom,
		)
		if err != nil {
			log.Fatal("[NOTIFY] [ERROR] twilio transport: ", err)
		}
		return transport
	}
	return notifier.NewBridgeTransport(config.AppEnv.BridgeURL)
}

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Println("[DB] [WARN] user index:", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Println("[DB] [WARN] order index:", err)
	}
	if err := database.EnsureSessionIndexes(db); err != nil {
		log.Println("[DB] [WARN] session index:", err)
	}

	gateway := notifier.NewGateway(buildTransport())
	gateway.Start()
	defer gateway.Stop()

	dispatcher := notifier.NewDispatcher(gateway, 64)
	defer dispatcher.Close()

	store := session.NewMongoStore(db)
	manager := session.NewManager(store, config.AppEnv.SweepInterval, func(kind session.Kind, sess session.Session) {
		log.Println("[SESSION] [INFO] expired session swept:", string(kind), sess.User.Email)
	})
	manager.Start()
	defer manager.Stop()

	r := gin.Default()
	r.Static("/public", "./public")

	api := r.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/signup", handlers.Signup(db, dispatcher, config.AppEnv.OTPTTL))
		users.POST("/verify-otp", handlers.VerifyOTP(db, dispatcher))
		users.POST("/signin", handlers.Signin(db, store, config.AppEnv.JWTSecret, config.AppEnv.SessionTTL))
		users.POST("/admin-login", handlers.AdminLogin(db, store, config.AppEnv.JWTSecret, config.AppEnv.SessionTTL))
		users.POST("/logout", handlers.Logout(store, session.KindUser))
		users.POST("/admin-logout", handlers.Logout(store, session.KindAdmin))
		users.GET("/session", handlers.SessionInfo(store, session.KindUser))
		users.GET("/admin-session", handlers.SessionInfo(store, session.KindAdmin))
	}

	products := api.Group("/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/:productId", handlers.GetProduct(db))

		adminProducts := products.Group("")
		adminProducts.Use(middleware.AdminGuard(store, config.AppEnv.JWTSecret))
		{
			adminProducts.POST("", handlers.CreateProduct(db))
			adminProducts.PUT("/:productId", handlers.UpdateProduct(db))
			adminProducts.DELETE("/:productId", handlers.DeleteProduct(db))
		}
	}

	orders := api.Group("/orders")
	{
		userOrders := orders.Group("")
		userOrders.Use(middleware.UserGuard(store, config.AppEnv.JWTSecret))
		{
			userOrders.POST("", handlers.CreateOrder(db, dispatcher, config.AppEnv.CurrencySymbol))
			userOrders.GET("/user/:userId", handlers.GetUserOrders(db))
		}

		adminOrders := orders.Group("")
		adminOrders.Use(middleware.AdminGuard(store, config.AppEnv.JWTSecret))
		{
			adminOrders.GET("/all", handlers.GetAllOrders(db))
			adminOrders.PATCH("/:orderId/status", handlers.UpdateOrderStatus(db, dispatcher, config.AppEnv.CurrencySymbol))
		}
	}

	api.POST("/contact", handlers.SubmitContact(db))
	api.GET("/contact", middleware.AdminGuard(store, config.AppEnv.JWTSecret), handlers.ListContacts(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
