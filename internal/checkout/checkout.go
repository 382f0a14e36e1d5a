// Package checkout assembles an order from the current cart and a shipping
// address and dispatches it down one of two fulfillment paths: cash on
// delivery, or an online-payment gateway redirect.
package checkout

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dragon98048/EverstMart/internal/domain/address"
	"github.com/dragon98048/EverstMart/internal/domain/cart"
)

// PaymentMethodCOD marks a cash-on-delivery order. Online-payment orders
// carry no method marker; the gateway callback settles them.
const PaymentMethodCOD = "COD"

// Validation errors, checked in this order before anything leaves the
// process. A failed check means no network call was made.
var (
	ErrNotAuthenticated = errors.New("login required")
	ErrMissingPhone     = errors.New("phone number is required")
	ErrMissingStreet    = errors.New("delivery address is required")
	ErrEmptyCart        = errors.New("cart is empty")
)

// OrderLine is the immutable snapshot of one cart line item at the moment
// of checkout. Later cart mutations do not affect a submitted order.
type OrderLine struct {
	ProductRef string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
}

// Order is the submission payload. It is constructed fresh per checkout
// attempt and never modified after submission.
type Order struct {
	Items           []OrderLine
	ShippingAddress address.ShippingAddress
	TotalAmount     decimal.Decimal
	PaymentMethod   string
}

// GatewayPost carries the browser-level form post the payment gateway
// requires: a redirect target plus opaque parameters that must be
// resubmitted as hidden form fields. It is not a programmatic API call.
type GatewayPost struct {
	URL    string
	Params map[string]string
}

// OrderAPI places a cash-on-delivery order with the remote order service.
type OrderAPI interface {
	PlaceCOD(ctx context.Context, order Order) error
}

// PaymentAPI starts an online payment and returns the gateway redirect.
type PaymentAPI interface {
	Initiate(ctx context.Context, order Order) (*GatewayPost, error)
}

// TokenSource exposes the currently held auth token.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Orchestrator validates checkout readiness and dispatches orders.
//
// It deliberately carries no in-flight submission latch: two rapid submits
// can both reach the order service. Collaborator failures leave the cart
// and the caller's form state untouched for manual retry.
type Orchestrator struct {
	cart     *cart.Store
	identity TokenSource
	orders   OrderAPI
	payments PaymentAPI
	lg       *zap.Logger
}

// NewOrchestrator creates a checkout Orchestrator.
func NewOrchestrator(
	cartStore *cart.Store,
	identity TokenSource,
	orders OrderAPI,
	payments PaymentAPI,
	lg *zap.Logger,
) *Orchestrator {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Orchestrator{
		cart:     cartStore,
		identity: identity,
		orders:   orders,
		payments: payments,
		lg:       lg,
	}
}

// SubmitCOD places a cash-on-delivery order. On success the cart is
// cleared; on failure it is left intact with the same items and quantities.
func (o *Orchestrator) SubmitCOD(ctx context.Context, addr address.ShippingAddress) error {
	order, err := o.assemble(ctx, addr)
	if err != nil {
		return err
	}
	order.PaymentMethod = PaymentMethodCOD

	if err := o.orders.PlaceCOD(ctx, *order); err != nil {
		return errors.Wrap(err, "place order")
	}

	o.lg.Info("Order placed",
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.String()),
	)

	if err := o.cart.Clear(ctx); err != nil {
		// The order went through; a stale cart is an annoyance, not a loss.
		o.lg.Warn("Clearing cart after order failed", zap.Error(err))
	}
	return nil
}

// SubmitOnlinePayment starts an online payment and returns the gateway
// form post to execute in a browser. The cart is NOT cleared: payment is
// unconfirmed until the gateway's success callback, which is handled by
// the order service, not this client.
func (o *Orchestrator) SubmitOnlinePayment(ctx context.Context, addr address.ShippingAddress) (*GatewayPost, error) {
	order, err := o.assemble(ctx, addr)
	if err != nil {
		return nil, err
	}

	post, err := o.payments.Initiate(ctx, *order)
	if err != nil {
		return nil, errors.Wrap(err, "initiate payment")
	}

	o.lg.Info("Payment initiated", zap.String("gateway", post.URL))
	return post, nil
}

// assemble checks preconditions in order, fail-fast, then snapshots the
// cart into an order payload. The total is computed here and never
// recomputed later.
func (o *Orchestrator) assemble(ctx context.Context, addr address.ShippingAddress) (*Order, error) {
	if _, ok := o.identity.Token(ctx); !ok {
		return nil, ErrNotAuthenticated
	}
	if addr.Phone == "" {
		return nil, ErrMissingPhone
	}
	if addr.Street == "" {
		return nil, ErrMissingStreet
	}

	items, err := o.cart.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]OrderLine, len(items))
	for i, item := range items {
		lines[i] = OrderLine{
			ProductRef: item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	return &Order{
		Items:           lines,
		ShippingAddress: addr,
		TotalAmount:     cart.TotalPrice(items),
	}, nil
}
