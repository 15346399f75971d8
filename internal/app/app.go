// Package app is the composition root for the storefront client: it
// builds the state store, API client, resource services and stores, and
// wires the session/cart dependency that keeps them consistent.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/PattyWambere/KapeeFrontend/config"
	"github.com/PattyWambere/KapeeFrontend/internal/admin"
	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/cart"
	"github.com/PattyWambere/KapeeFrontend/internal/checkout"
	"github.com/PattyWambere/KapeeFrontend/internal/session"
	"github.com/PattyWambere/KapeeFrontend/internal/storage"
	"github.com/PattyWambere/KapeeFrontend/internal/util"
	"github.com/PattyWambere/KapeeFrontend/internal/wishlist"

	"go.uber.org/zap"
)

// App bundles the storefront client's components for one process.
type App struct {
	State      storage.StateStore
	Client     *api.Client
	Products   *api.ProductService
	Categories *api.CategoryService
	Session    *session.Store
	Cart       *cart.Store
	Wishlist   *wishlist.Store
	Checkout   *checkout.Flow
	Admin      *admin.Console

	logger *zap.Logger
}

// New builds the client stack from configuration. The session store and
// cart store are wired so an authentication flip swaps the cart backend
// and refetches.
func New(cfg *config.Config) (*App, error) {
	var state storage.StateStore
	var err error

	switch cfg.Client.StateBackend {
	case "redis":
		state, err = storage.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, "kapee")
	default:
		state, err = storage.NewFileStore(cfg.Client.StateFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}

	client := api.NewClient(cfg.Client.APIBaseURL, state)
	auth := api.NewAuthService(client)
	products := api.NewProductService(client)
	categories := api.NewCategoryService(client)
	orders := api.NewOrderService(client)
	cartSvc := api.NewCartService(client)

	sess := session.NewStore(client, auth)
	cartStore := cart.NewStore(state, cartSvc)
	flow := checkout.NewFlow(cartStore, orders)

	a := &App{
		State:      state,
		Client:     client,
		Products:   products,
		Categories: categories,
		Session:    sess,
		Cart:       cartStore,
		Wishlist:   wishlist.NewStore(),
		Checkout:   flow,
		Admin:      admin.NewConsole(sess, products, categories, orders),
		logger:     util.GetLogger(),
	}

	sess.OnAuthChange(func(authenticated bool) {
		if err := cartStore.SetAuthenticated(context.Background(), authenticated); err != nil {
			a.logger.Warn("Failed to switch cart backend", zap.Error(err))
		}
	})

	return a, nil
}

// Start resumes a persisted session, if any. It blocks until the resume
// check completes so callers never observe a flash of logged-out state.
func (a *App) Start(ctx context.Context) {
	a.Session.Resume(ctx)
}

// Close releases the state store if it holds a connection.
func (a *App) Close() error {
	if closer, ok := a.State.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
