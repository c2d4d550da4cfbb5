package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"send-push/config"
	"send-push/database"
	"send-push/models"
	"send-push/services"
)

// App regroupe les dépendances du service send-push
type App struct {
	Config     *config.Config
	Store      database.TokenStore
	Resolver   *services.RecipientResolver
	Dispatcher services.Dispatcher
	Slack      *services.SlackService

	closers []func(ctx context.Context) error
}

// Options permet de désactiver le stockage des tokens (envoi direct depuis la CLI)
type Options struct {
	SkipStore bool
}

// New construit le service à partir de la configuration.
// L'absence de compte de service n'empêche pas le démarrage : chaque envoi échouera avec une SigningError.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{Config: cfg}

	if !opts.SkipStore {
		store, err := openTokenStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		a.Store = store
		a.closers = append(a.closers, store.Close)
	}
	a.Resolver = services.NewRecipientResolver(a.Store, cfg.RequestTimeout)

	account, err := cfg.LoadServiceAccount()
	if err != nil {
		if errors.Is(err, config.ErrNoCredentials) {
			log.Println("⚠️  Aucun compte de service Firebase configuré")
		} else {
			log.Printf("⚠️  Compte de service Firebase invalide: %v", err)
		}
		log.Println("⚠️  Le serveur démarre SANS notifications push")
		log.Println("💡 Pour activer Firebase : configurez FIREBASE_CREDENTIALS_BASE64")
	} else {
		log.Printf("✓ Compte de service chargé (projet %s)", account.ProjectID)
	}

	switch cfg.DispatchBackend {
	case config.DispatchBackendFirebase:
		a.Dispatcher = newFirebaseDispatcher(ctx, cfg, account)
	default:
		cache := a.newTokenCache(ctx)
		var source *services.AccessTokenSource
		if account != nil {
			exchanger := services.NewTokenExchanger(account.Audience(), cfg.RequestTimeout)
			source = services.NewAccessTokenSource(account, exchanger, cache)
		} else {
			source = services.NewAccessTokenSource(nil, nil, nil)
		}
		a.Dispatcher = services.NewFCMDispatcher(source, cfg.FCMEndpoint, cfg.DispatchWorkers, cfg.RequestTimeout)
		log.Printf("✓ Envoi via l'API FCM v1 (%d workers)", cfg.DispatchWorkers)
	}

	a.Slack = services.NewSlackService(cfg.SlackWebhookURL)

	return a, nil
}

// StoreName retourne le nom du stockage utilisé ("" sans stockage)
func (a *App) StoreName() string {
	if a.Store == nil {
		return ""
	}
	return a.Config.TokenStore
}

// Close libère les connexions ouvertes (ordre inverse d'ouverture)
func (a *App) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Printf("⚠️  Erreur lors de la fermeture: %v", err)
		}
	}
}

func openTokenStore(ctx context.Context, cfg *config.Config) (database.TokenStore, error) {
	switch cfg.TokenStore {
	case config.TokenStorePostgres:
		store, err := database.OpenPostgres(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("erreur de connexion à PostgreSQL: %w", err)
		}
		if err := store.Ping(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("PostgreSQL injoignable: %w", err)
		}
		log.Println("✓ Connecté à PostgreSQL")
		return store, nil
	default:
		db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("erreur de connexion à MongoDB: %w", err)
		}
		return database.NewFCMTokenRepository(db), nil
	}
}

// newTokenCache retourne nil quand le cache est désactivé. Redis injoignable : repli sur la mémoire.
func (a *App) newTokenCache(ctx context.Context) services.AccessTokenCache {
	switch a.Config.AccessTokenCache {
	case config.TokenCacheNone:
		return nil
	case config.TokenCacheRedis:
		cache := services.NewRedisTokenCache(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB)
		if err := cache.Ping(ctx); err != nil {
			log.Printf("⚠️  Redis injoignable (%v), cache en mémoire", err)
			_ = cache.Close()
			return services.NewMemoryTokenCache()
		}
		a.closers = append(a.closers, func(context.Context) error { return cache.Close() })
		log.Println("✓ Cache d'access token Redis")
		return cache
	default:
		return services.NewMemoryTokenCache()
	}
}

func newFirebaseDispatcher(ctx context.Context, cfg *config.Config, account *models.ServiceAccount) services.Dispatcher {
	if account == nil {
		return services.NewDisabledFirebaseDispatcher()
	}

	raw, err := cfg.CredentialsJSON()
	if err == nil {
		var dispatcher *services.FirebaseDispatcher
		dispatcher, err = services.NewFirebaseDispatcher(ctx, raw, account.ProjectID, cfg.DispatchWorkers, cfg.RequestTimeout)
		if err == nil {
			return dispatcher
		}
	}

	log.Printf("⚠️  Erreur d'initialisation Firebase: %v", err)
	return services.NewDisabledFirebaseDispatcher()
}
