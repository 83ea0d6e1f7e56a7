// Package data is the single mediator between the UI, the local cache and the
// remote API. It owns the in-memory session state, refreshes the product
// mirror, and serves every read as a reactive stream sourced from the cache.
package data

import (
	"context"

	"github.com/rs/zerolog"

	"storefront/internal/api"
	"storefront/internal/model"
	"storefront/internal/session"
	"storefront/internal/store"
	"storefront/internal/stream"
)

// RemoteAPI is the slice of the API client the repository depends on.
type RemoteAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, req api.RegisterRequest) error
	Logout(ctx context.Context, token string) error
	Products(ctx context.Context) ([]model.Product, error)
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*model.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
	PlaceOrder(ctx context.Context, lines []api.OrderLine) (uint, error)
}

var _ RemoteAPI = (*api.Client)(nil)

// Repository mediates between the local cache store and the remote API.
// It is the sole owner of the current-user session cell.
type Repository struct {
	products store.ProductStore
	cart     store.CartStore
	users    store.UserStore

	remote RemoteAPI
	tokens *session.Holder

	current     *stream.Cell[*model.User]
	refreshErrs *stream.Events[error]

	log zerolog.Logger
}

// NewRepository wires a Repository over the given cache store, API client and
// token holder.
func NewRepository(s *store.Store, remote RemoteAPI, tokens *session.Holder, log zerolog.Logger) *Repository {
	return &Repository{
		products:    s.Products(),
		cart:        s.Cart(),
		users:       s.Users(),
		remote:      remote,
		tokens:      tokens,
		current:     stream.NewCell[*model.User](nil),
		refreshErrs: stream.NewEvents[error](),
		log:         log,
	}
}

// CurrentUser returns the authenticated user, or nil when anonymous.
func (r *Repository) CurrentUser() *model.User {
	return r.current.Get()
}

// Token returns the current bearer token for callers that persist it across
// restarts. The session cell, not the token, is the source of truth for
// "am I logged in" at the UI level.
func (r *Repository) Token() (string, bool) {
	return r.tokens.Get()
}

// ObserveCurrentUser replays the current session state and emits on every
// login, logout and profile refresh. nil means anonymous.
func (r *Repository) ObserveCurrentUser(ctx context.Context) <-chan *model.User {
	return r.current.Subscribe(ctx)
}

// RefreshErrors emits the errors RefreshProducts swallows. Consumers that
// ignore it get the baseline stale-cache-no-banner behavior.
func (r *Repository) RefreshErrors(ctx context.Context) <-chan error {
	return r.refreshErrs.Subscribe(ctx)
}

// RefreshProducts fetches the full catalog and atomically replaces the local
// mirror. Failures are deliberately swallowed: the existing cache stands,
// the error is logged and republished on RefreshErrors, and observers simply
// keep seeing the old snapshot.
func (r *Repository) RefreshProducts(ctx context.Context) {
	products, err := r.remote.Products(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("product refresh failed, keeping cached catalog")
		r.refreshErrs.Publish(err)
		return
	}
	if err := r.products.ReplaceAll(ctx, products); err != nil {
		r.log.Warn().Err(err).Msg("product cache replace failed, keeping cached catalog")
		r.refreshErrs.Publish(err)
	}
}

// Products streams the full catalog, re-emitting after every refresh.
func (r *Repository) Products(ctx context.Context) <-chan []model.Product {
	return r.products.ObserveAll(ctx)
}

// Categories streams the distinct category labels, lexicographically ordered.
func (r *Repository) Categories(ctx context.Context) <-chan []string {
	return r.products.ObserveCategories(ctx)
}

// ProductsByCategory streams the catalog filtered to one category.
func (r *Repository) ProductsByCategory(ctx context.Context, category string) <-chan []model.Product {
	return r.products.ObserveByCategory(ctx, category)
}

// CartItems streams the cart joined with product details, re-emitting when
// either table changes.
func (r *Repository) CartItems(ctx context.Context) <-chan []model.CartItemDetails {
	return r.cart.ObserveDetails(ctx)
}

// AddToCart puts one unit of the product in the cart, accumulating quantity
// if it is already there.
func (r *Repository) AddToCart(ctx context.Context, productID uint) error {
	return r.cart.AddOrIncrement(ctx, productID)
}

// IncreaseQuantity bumps an existing cart row by one. Absent rows are a no-op.
func (r *Repository) IncreaseQuantity(ctx context.Context, productID uint) error {
	return r.cart.Increment(ctx, productID)
}

// DecreaseQuantity lowers a cart row by one, removing it at zero. Absent rows
// are a no-op.
func (r *Repository) DecreaseQuantity(ctx context.Context, productID uint) error {
	return r.cart.Decrement(ctx, productID)
}

// RemoveFromCart drops the product from the cart regardless of quantity.
func (r *Repository) RemoveFromCart(ctx context.Context, productID uint) error {
	return r.cart.Delete(ctx, productID)
}

// ClearCart empties the cart.
func (r *Repository) ClearCart(ctx context.Context) error {
	return r.cart.Clear(ctx)
}
