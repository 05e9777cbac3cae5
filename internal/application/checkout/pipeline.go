// Package checkout turns a visitor's cart, contact and address into a stored
// order and hands the shopper over to WhatsApp.
package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/application/confirmation"
	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/customer"
	"github.com/pupuk/storefront/internal/domain/order"
	"github.com/pupuk/storefront/internal/domain/region"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
	"github.com/pupuk/storefront/internal/infrastructure/telemetry"
)

// Shopper-facing notification texts.
const (
	MsgContactIncomplete = "Lengkapi nama dan nomor HP"
	MsgAddressIncomplete = "Lengkapi alamat pengiriman"
	MsgCartEmpty         = "Keranjang kosong"
	MsgSuccess           = "Pesanan berhasil dibuat!"
	MsgSubmissionFailed  = "Gagal membuat pesanan. Coba lagi."
)

// Precondition and submission errors. Each carries the text shown to the
// shopper as its message.
var (
	ErrContactIncomplete = shared.NewDomainError("CONTACT_INCOMPLETE", MsgContactIncomplete)
	ErrAddressIncomplete = shared.NewDomainError("ADDRESS_INCOMPLETE", MsgAddressIncomplete)
	ErrCartEmpty         = shared.NewDomainError("CART_EMPTY", MsgCartEmpty)
	ErrSubmissionFailed  = shared.NewDomainError("SUBMISSION_FAILED", MsgSubmissionFailed)
)

// Metric outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeRejected         = "rejected"
	OutcomeSubmissionFailed = "submission_failed"
)

// ToastLevel is the severity of a notification.
type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

// Toast is one shopper notification. Field names the form field a warning
// is about.
type Toast struct {
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
	Field   string     `json:"field,omitempty"`
}

// ToastDispatcher delivers notifications to the shopper.
type ToastDispatcher interface {
	Dispatch(ctx context.Context, t Toast)
}

// CartSource is the session cart the pipeline reads and clears.
type CartSource interface {
	Lines() []cart.Line
	Clear(ctx context.Context) error
}

// HandoffBuilder prepares the confirmation for a placed order.
type HandoffBuilder interface {
	Build(customerName string, items []cart.Line) confirmation.Handoff
}

// HandoffSink receives the confirmation for the session.
type HandoffSink interface {
	Start(h confirmation.Handoff)
}

// Observer records checkout outcomes.
type Observer interface {
	ObserveCheckout(outcome, reason string, amount float64)
}

// Input is one checkout attempt.
type Input struct {
	Contact customer.Contact
	Address region.Selection
	Notes   string
	Cart    CartSource
	Handoff HandoffSink
	Toasts  ToastDispatcher
}

// Result describes a placed order.
type Result struct {
	Order   *order.Order
	Lines   []order.Line
	Handoff confirmation.Handoff
}

// Pipeline validates and submits orders.
type Pipeline struct {
	orders    order.Repository
	handoffs  HandoffBuilder
	publisher shared.EventPublisher
	observer  Observer
	logger    *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPublisher publishes OrderPlaced after a successful submission.
func WithPublisher(p shared.EventPublisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

// WithObserver records outcomes, e.g. as metrics.
func WithObserver(o Observer) Option {
	return func(pl *Pipeline) { pl.observer = o }
}

// NewPipeline creates a Pipeline.
func NewPipeline(orders order.Repository, handoffs HandoffBuilder, logger *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{orders: orders, handoffs: handoffs, logger: logger}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit runs the checkout. Preconditions are checked in order and the
// first failure is reported as a warning without touching the backend.
// The header is written before the lines; if the lines fail the header
// stays behind and is logged. On any submission error the cart is kept.
func (p *Pipeline) Submit(ctx context.Context, in Input) (*Result, error) {
	log := logger.L(ctx, p.logger)
	contact := in.Contact.Normalized()
	items := in.Cart.Lines()

	ctx, span := telemetry.StartSpan(ctx, "checkout", "submit", telemetry.SpanAttrItemCount, len(items))
	defer span.End()

	if err := p.checkPreconditions(ctx, in.Toasts, contact, in.Address, items); err != nil {
		var de *shared.DomainError
		reason := ""
		if errors.As(err, &de) {
			reason = strings.ToLower(de.Code)
		}
		telemetry.SetAttributes(span, telemetry.SpanAttrOutcome, OutcomeRejected)
		p.observe(OutcomeRejected, reason, decimal.Zero)
		return nil, err
	}

	header, err := order.NewOrder(contact, in.Address, strings.TrimSpace(in.Notes), items)
	if err != nil {
		return nil, p.fail(ctx, in.Toasts, log, err, uuid.Nil)
	}
	if err := p.orders.Create(ctx, header); err != nil {
		return nil, p.fail(ctx, in.Toasts, log, err, uuid.Nil)
	}

	lines := order.NewLines(header.ID, items)
	if err := p.orders.CreateLines(ctx, lines); err != nil {
		return nil, p.fail(ctx, in.Toasts, log, err, header.ID)
	}

	if err := in.Cart.Clear(ctx); err != nil {
		log.Warn("Order placed but cart could not be cleared", zap.String("order_id", header.ID.String()), zap.Error(err))
	}
	in.Toasts.Dispatch(ctx, Toast{Level: ToastSuccess, Message: MsgSuccess})

	handoff := p.handoffs.Build(contact.Name, items)
	if in.Handoff != nil {
		in.Handoff.Start(handoff)
	}

	log.Info("Order placed",
		zap.String("order_id", header.ID.String()),
		zap.Int("lines", len(lines)),
		zap.String("total", header.TotalAmount.String()),
	)
	telemetry.SetAttributes(span,
		telemetry.SpanAttrOutcome, OutcomeSuccess,
		telemetry.SpanAttrOrderID, header.ID.String(),
		telemetry.SpanAttrOrderTotal, header.TotalAmount.InexactFloat64(),
	)
	p.observe(OutcomeSuccess, "", header.TotalAmount)

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, order.NewOrderPlacedEvent(header)); err != nil {
			log.Warn("Failed to publish OrderPlaced", zap.String("order_id", header.ID.String()), zap.Error(err))
		}
	}

	return &Result{Order: header, Lines: lines, Handoff: handoff}, nil
}

func (p *Pipeline) checkPreconditions(ctx context.Context, toasts ToastDispatcher, contact customer.Contact, address region.Selection, items []cart.Line) error {
	switch {
	case !contact.HasNameAndPhone():
		toasts.Dispatch(ctx, Toast{Level: ToastWarning, Message: MsgContactIncomplete, Field: "contact"})
		return ErrContactIncomplete
	case !address.IsComplete():
		toasts.Dispatch(ctx, Toast{Level: ToastWarning, Message: MsgAddressIncomplete, Field: "address"})
		return ErrAddressIncomplete
	case len(items) == 0:
		toasts.Dispatch(ctx, Toast{Level: ToastWarning, Message: MsgCartEmpty, Field: "cart"})
		return ErrCartEmpty
	}
	return nil
}

// fail logs the cause and reports the single generic failure. orphan is the
// id of a header written without its lines, if any.
func (p *Pipeline) fail(ctx context.Context, toasts ToastDispatcher, log *zap.Logger, cause error, orphan uuid.UUID) error {
	if orphan != uuid.Nil {
		log.Warn("Order header stored without lines",
			zap.String("order_id", orphan.String()),
			zap.Error(cause),
		)
	} else {
		log.Error("Order submission failed", zap.Error(cause))
	}
	toasts.Dispatch(ctx, Toast{Level: ToastError, Message: MsgSubmissionFailed})
	telemetry.RecordError(telemetry.SpanFromContext(ctx), cause)
	p.observe(OutcomeSubmissionFailed, "", decimal.Zero)
	return ErrSubmissionFailed.Wrap(cause)
}

func (p *Pipeline) observe(outcome, reason string, amount decimal.Decimal) {
	if p.observer == nil {
		return
	}
	p.observer.ObserveCheckout(outcome, reason, amount.InexactFloat64())
}
