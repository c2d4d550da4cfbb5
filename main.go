package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"send-push/app"
	"send-push/config"
	"send-push/handlers"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	application, err := app.New(context.Background(), cfg, app.Options{})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	var notifier handlers.FailureNotifier
	if application.Slack.Enabled() {
		notifier = application.Slack
	}

	sendPushHandler := handlers.NewSendPushHandler(application.Resolver, application.Dispatcher, handlers.SendPushOptions{
		StrictHTTPStatus: cfg.StrictHTTPStatus,
		ExposeStack:      cfg.IsDevelopment(),
		Notifier:         notifier,
	})
	healthHandler := handlers.NewHealthHandler(cfg.Environment, application.Store, application.StoreName(), cfg.DispatchBackend)

	if cfg.FunctionJWTSecret == "" {
		log.Println("⚠️  FUNCTION_JWT_SECRET non défini - send-push accessible sans authentification")
	}
	router := newRouter(cfg.CORSOrigins, cfg.FunctionJWTSecret, sendPushHandler, healthHandler)

	// Démarrer le serveur
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Gérer l'arrêt gracieux du serveur
	go func() {
		log.Printf("🚀 Serveur démarré sur http://%s", addr)
		log.Printf("📝 Environnement: %s", cfg.Environment)
		if application.Store != nil {
			log.Printf("🗄️  Stockage des tokens: %s", application.StoreName())
		}
		log.Printf("🔥 Backend d'envoi: %s", cfg.DispatchBackend)
		log.Println("📋 Routes disponibles:")
		log.Println("   POST   /send-push                  - Envoyer une notification push")
		log.Println("   POST   /functions/v1/send-push     - Alias (chemin des fonctions hébergées)")
		log.Println("   GET    /api/health                 - Health check")
		log.Println("\n✨ Le serveur est prêt à recevoir des requêtes!")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Erreur du serveur: %v", err)
		}
	}()

	// Attendre le signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n🛑 Arrêt du serveur...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Erreur lors de l'arrêt du serveur: %v", err)
	}
	application.Close(ctx)
	log.Println("✓ Serveur arrêté proprement")
}
