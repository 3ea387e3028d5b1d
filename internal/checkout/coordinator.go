// Package checkout drives a non-empty cart through payment method choice and
// one of two handoffs: a chat message deep link or a payment redirect.
package checkout

import (
	"context"
	"errors"
	"strings"
	"time"

	"nativedelight/internal/apperrors"
	"nativedelight/internal/cart"
	"nativedelight/internal/models"
)

type State string

const (
	StateIdle                State = "idle"
	StatePaymentMethodChoice State = "payment_method_choice"
	// StateMessageHandoff holds while the chat order confirmation is shown.
	StateMessageHandoff State = "message_handoff"
	StateFormCollection State = "form_collection"
	StateSubmitting     State = "submitting"
	StateSuccess        State = "success"
	// StateFailed keeps the form open with the failure message; the user may
	// resubmit.
	StateFailed State = "failed"
)

const (
	DefaultDestination = "2348142809371"
	DefaultCurrency    = "N"
	DefaultResetDelay  = 3 * time.Second

	submissionFailedMessage = "Failed to process order. Please try again."
)

type Config struct {
	// Destination is the chat number orders are sent to.
	Destination string
	Currency    string
	// ResetDelay is how long the order confirmation stays visible.
	ResetDelay time.Duration
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Destination) == "" {
		c.Destination = DefaultDestination
	}
	if c.ResetDelay <= 0 {
		c.ResetDelay = DefaultResetDelay
	}
	return c
}

// Flags mirror the modal and banner state a client renders.
type Flags struct {
	CartOpen          bool `json:"cartOpen"`
	PaymentMethodOpen bool `json:"paymentMethodOpen"`
	CheckoutFormOpen  bool `json:"checkoutFormOpen"`
	OrderPlaced       bool `json:"orderPlaced"`
	Submitting        bool `json:"submitting"`
}

type PaymentInitializer interface {
	InitializePayment(ctx context.Context, draft models.OrderDraft) (*models.PaymentResponse, error)
}

type Observer interface {
	OrderPlaced(method models.PaymentMethod)
	PaymentRedirected()
	SubmissionFailed()
}

type nopObserver struct{}

func (nopObserver) OrderPlaced(models.PaymentMethod) {}
func (nopObserver) PaymentRedirected()               {}
func (nopObserver) SubmissionFailed()                {}

// Result is the outcome of a payment form submission. At most one of
// RedirectURL and OrderPlaced is set.
type Result struct {
	RedirectURL string `json:"redirectUrl,omitempty"`
	OrderPlaced bool   `json:"orderPlaced"`
}

// ServerMessage extracts a user-facing message carried by err, if any.
func ServerMessage(err error) string {
	var carrier interface{ ServerMessage() string }
	if errors.As(err, &carrier) {
		return strings.TrimSpace(carrier.ServerMessage())
	}
	return ""
}

// Coordinator is not safe for concurrent use. Callers serialize access and
// must also serialize the callbacks handed to the Scheduler.
type Coordinator struct {
	cart      *cart.Store
	cfg       Config
	scheduler Scheduler
	observer  Observer

	state       State
	methodOpen  bool
	formOpen    bool
	orderPlaced bool
	lastError   string

	pending    Timer
	generation uint64
}

func New(store *cart.Store, cfg Config, scheduler Scheduler, observer Observer) *Coordinator {
	if scheduler == nil {
		scheduler = ClockScheduler{}
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Coordinator{
		cart:      store,
		cfg:       cfg.withDefaults(),
		scheduler: scheduler,
		observer:  observer,
		state:     StateIdle,
	}
}

func (c *Coordinator) State() State {
	return c.state
}

// LastError is the message shown inline in the checkout form.
func (c *Coordinator) LastError() string {
	return c.lastError
}

func (c *Coordinator) Flags() Flags {
	return Flags{
		CartOpen:          c.cart.IsOpen(),
		PaymentMethodOpen: c.methodOpen,
		CheckoutFormOpen:  c.formOpen,
		OrderPlaced:       c.orderPlaced,
		Submitting:        c.state == StateSubmitting,
	}
}

// Begin opens the payment method chooser. It reports false without changing
// anything when the cart is empty, a submission is in flight, or an order
// confirmation is showing.
func (c *Coordinator) Begin() bool {
	if c.cart.IsEmpty() || c.orderPlaced || c.state == StateSubmitting {
		return false
	}
	c.state = StatePaymentMethodChoice
	c.methodOpen = true
	c.formOpen = false
	c.lastError = ""
	return true
}

// CartEditable refuses cart edits while a submission built from the cart is
// in flight.
func (c *Coordinator) CartEditable() error {
	if c.state == StateSubmitting {
		return c.conflict("cart is locked while the order is submitted")
	}
	return nil
}

// ChooseMessaging builds the chat deep link for the current cart and marks the
// order placed without waiting for any confirmation.
func (c *Coordinator) ChooseMessaging() (string, error) {
	if c.state != StatePaymentMethodChoice {
		return "", c.conflict("payment method chooser is not open")
	}
	if c.cart.IsEmpty() {
		c.toIdle()
		return "", c.conflict("cart is empty")
	}

	body := OrderMessage(c.cart.Lines(), c.cart.Total(), c.cfg.Currency)
	link := DeepLink(c.cfg.Destination, body)

	c.state = StateMessageHandoff
	c.placeOrder(models.PaymentMethodWhatsApp)
	return link, nil
}

// ChoosePaymentForm swaps the method chooser for the checkout form.
func (c *Coordinator) ChoosePaymentForm() error {
	if c.state != StatePaymentMethodChoice {
		return c.conflict("payment method chooser is not open")
	}
	c.state = StateFormCollection
	c.methodOpen = false
	c.formOpen = true
	c.lastError = ""
	return nil
}

// Cancel closes the chooser or form. It is refused while a submission is in
// flight or an order confirmation is showing.
func (c *Coordinator) Cancel() error {
	if c.state == StateSubmitting {
		return c.conflict("a submission is in progress")
	}
	if c.orderPlaced {
		return c.conflict("order already placed")
	}
	c.toIdle()
	return nil
}

// PrepareSubmission validates the form and moves to Submitting. Validation
// failures leave the state untouched and record the hint for display.
func (c *Coordinator) PrepareSubmission(form Form) (models.OrderDraft, error) {
	switch c.state {
	case StateFormCollection, StateFailed:
	case StateSubmitting:
		return models.OrderDraft{}, c.conflict("a submission is already in progress")
	default:
		return models.OrderDraft{}, c.conflict("checkout form is not open")
	}

	if err := form.Validate(); err != nil {
		if typed := apperrors.As(err); typed != nil {
			c.lastError = typed.Message()
		}
		return models.OrderDraft{}, err
	}
	if c.cart.IsEmpty() {
		return models.OrderDraft{}, c.conflict("cart is empty")
	}

	form = form.normalized()
	lines := c.cart.Lines()
	items := make([]models.OrderDraftItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderDraftItem{ProductID: line.ID, Quantity: line.Quantity})
	}

	c.state = StateSubmitting
	c.lastError = ""

	return models.OrderDraft{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Address: form.Address,
		Items:   items,
		Amount:  c.cart.Total(),
	}, nil
}

// CompleteSubmission applies the payment initialization outcome. A redirect
// leaves the cart untouched; the payment completes out of band.
func (c *Coordinator) CompleteSubmission(resp *models.PaymentResponse, err error) (Result, error) {
	if c.state != StateSubmitting {
		return Result{}, c.conflict("no submission in progress")
	}

	if err != nil {
		message := ServerMessage(err)
		if message == "" {
			message = submissionFailedMessage
		}
		c.state = StateFailed
		c.lastError = message
		c.observer.SubmissionFailed()
		return Result{}, apperrors.Wrap(apperrors.CodeSubmission, err, message)
	}

	if redirect := resp.RedirectURL(); redirect != "" {
		c.state = StateFormCollection
		c.observer.PaymentRedirected()
		return Result{RedirectURL: redirect}, nil
	}

	c.state = StateSuccess
	c.placeOrder(models.PaymentMethodPaystack)
	return Result{OrderPlaced: true}, nil
}

// Submit runs PrepareSubmission, the payment call and CompleteSubmission in
// one go. Callers that hold a lock across coordinator calls should use the
// two halves directly so the network call runs unlocked.
func (c *Coordinator) Submit(ctx context.Context, payments PaymentInitializer, form Form) (Result, error) {
	draft, err := c.PrepareSubmission(form)
	if err != nil {
		return Result{}, err
	}
	resp, err := payments.InitializePayment(ctx, draft)
	return c.CompleteSubmission(resp, err)
}

// Close cancels a pending reset. The coordinator must not be used afterwards.
func (c *Coordinator) Close() {
	c.stopPending()
	c.generation++
}

func (c *Coordinator) placeOrder(method models.PaymentMethod) {
	c.orderPlaced = true
	c.lastError = ""
	c.observer.OrderPlaced(method)
	c.scheduleReset()
}

func (c *Coordinator) scheduleReset() {
	c.stopPending()
	c.generation++
	generation := c.generation
	c.pending = c.scheduler.AfterFunc(c.cfg.ResetDelay, func() {
		if generation != c.generation {
			return
		}
		c.pending = nil
		c.reset()
	})
}

func (c *Coordinator) stopPending() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

// reset clears the cart and returns every flag to its initial value.
func (c *Coordinator) reset() {
	c.cart.Clear()
	c.cart.Close()
	c.orderPlaced = false
	c.toIdle()
}

func (c *Coordinator) toIdle() {
	c.state = StateIdle
	c.methodOpen = false
	c.formOpen = false
	c.lastError = ""
}

func (c *Coordinator) conflict(message string) error {
	return apperrors.New(apperrors.CodeStateConflict, message).
		WithDetails(map[string]any{"state": c.state})
}
