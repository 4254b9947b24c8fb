package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/PatchLore/living-cards/internal/app"
	"github.com/PatchLore/living-cards/internal/config"
	"github.com/PatchLore/living-cards/internal/controllers"
	"github.com/PatchLore/living-cards/internal/repositories"
	"github.com/PatchLore/living-cards/internal/routes"
	"github.com/PatchLore/living-cards/internal/services"
	"github.com/PatchLore/living-cards/internal/sharetoken"
	"github.com/PatchLore/living-cards/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize card-service:", err)
	}
	defer application.Close()

	// Repositories
	cardRepo := repositories.NewCardRepository(application.DB)

	// Collaborators
	gateway := services.NewStripeGateway(cfg.StripeSecretKey)
	emailSender := services.NewSendgridEmailSender(cfg)
	certIssuer := services.NewTreeCertificateIssuer(cfg)

	codec, err := sharetoken.NewCodec(cfg.ShareTokenSecret)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize share token codec:", err)
	}

	// Services
	checkoutService := services.NewCheckoutService(cfg, gateway)
	fulfillmentService := services.NewFulfillmentService(cfg, cardRepo, gateway, emailSender, certIssuer)
	dedupService := services.NewWebhookDedupService()

	// Controllers
	healthController := controllers.NewHealthController(application)
	catalogController := controllers.NewCatalogController()
	checkoutController := controllers.NewCheckoutController(checkoutService)
	cardController := controllers.NewCardController(cfg, cardRepo, fulfillmentService)
	certificateController := controllers.NewCertificateController(fulfillmentService)
	shareLinkController := controllers.NewShareLinkController(cfg, codec)
	stripeWebhookController := controllers.NewStripeWebhookController(cfg, fulfillmentService, dedupService)

	// Router setup
	router := mux.NewRouter()

	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Catalog, catalogController.ListCatalogHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.CheckoutSessions, checkoutController.CreateSessionHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.CheckoutSession, checkoutController.GetSessionHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Cards, cardController.CreateCardHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.CardByShareID, cardController.GetCardHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Certificates, certificateController.CreateCertificateHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ShareLinks, shareLinkController.CreateShareLinkHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.ShareLinkByToken, shareLinkController.ResolveShareLinkHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.StripeWebhook, stripeWebhookController.WebhookHandler).Methods(http.MethodPost)

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.SiteURL, "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("card-service failed to start:", err)
	}
}
