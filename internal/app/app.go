package app

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"poshak-storefront/config"
	"poshak-storefront/internal/auth"
	"poshak-storefront/internal/cart"
	"poshak-storefront/internal/httpapi"
	"poshak-storefront/internal/order"
	"poshak-storefront/internal/storage"
)

type App struct {
	cfg        config.Config
	db         *mongo.Database
	httpServer httpapi.HTTPServer
}

// New connects to the database and assembles the HTTP surface. Nothing is
// served until Run.
func New(ctx context.Context, cfg config.Config) (App, error) {
	const op = "app.New"

	app := App{cfg: cfg}

	db, err := storage.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return App{}, fmt.Errorf("%s: %w", op, err)
	}
	app.db = db

	admins := storage.NewAdminRepository(db)
	if err := admins.EnsureIndexes(ctx); err != nil {
		storage.Disconnect(context.WithoutCancel(ctx), db)
		return App{}, fmt.Errorf("%s: %w", op, err)
	}

	carts, err := cart.NewStore(cfg.Cart.MaxSessions)
	if err != nil {
		storage.Disconnect(context.WithoutCancel(ctx), db)
		return App{}, fmt.Errorf("%s: %w", op, err)
	}

	h := httpapi.NewHandler(httpapi.Options{
		Products:      storage.NewProductRepository(db),
		Admins:        admins,
		Issuer:        auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Carts:         carts,
		Composer:      order.NewComposer(cfg.Checkout.Greeting),
		WhatsAppPhone: cfg.Checkout.WhatsAppPhone,
		FeaturedLimit: cfg.Catalog.FeaturedLimit,
	})
	router := httpapi.NewRouter(h, cfg.CORS.AllowOrigins)
	app.httpServer = httpapi.NewHTTPServer(cfg.HTTPAddr, router)

	return app, nil
}

func (app App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	zap.L().Info("application is running")
}

func (app App) Close(ctx context.Context) {
	zap.L().Info("application is closing...")

	app.httpServer.Close(ctx)
	storage.Disconnect(ctx, app.db)

	zap.L().Info("application is closed")
}
