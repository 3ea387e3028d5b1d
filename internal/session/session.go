// Package session holds the per-browser ordering state: the catalog snapshot
// taken at load, the cart, the view selection and the checkout coordinator.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"nativedelight/internal/apperrors"
	"nativedelight/internal/cart"
	"nativedelight/internal/catalog"
	"nativedelight/internal/checkout"
	"nativedelight/internal/models"
	"nativedelight/internal/view"
)

// Observer receives session and cart activity in addition to checkout
// outcomes.
type Observer interface {
	checkout.Observer
	CartMutated(op string)
	SessionOpened()
	SessionClosed()
}

type nopObserver struct{}

func (nopObserver) OrderPlaced(models.PaymentMethod) {}
func (nopObserver) PaymentRedirected()               {}
func (nopObserver) SubmissionFailed()                {}
func (nopObserver) CartMutated(string)               {}
func (nopObserver) SessionOpened()                   {}
func (nopObserver) SessionClosed()                   {}

// LineView is a cart line as rendered to clients. Money is a fixed two
// decimal string.
type LineView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// State is a point-in-time copy of everything a client renders.
type State struct {
	ID        string         `json:"sessionId"`
	Lines     []LineView     `json:"lines"`
	Total     string         `json:"total"`
	ItemCount int            `json:"itemCount"`
	Currency  string         `json:"currency"`
	Flags     checkout.Flags `json:"flags"`
	Checkout  checkout.State `json:"checkoutState"`
	Error     string         `json:"error,omitempty"`
	View      view.Selection `json:"view"`
}

// lockedScheduler runs deferred checkout callbacks under the session lock.
type lockedScheduler struct {
	mu   *sync.Mutex
	next checkout.Scheduler
}

func (s lockedScheduler) AfterFunc(d time.Duration, f func()) checkout.Timer {
	return s.next.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		f()
	})
}

// Session is safe for concurrent use.
type Session struct {
	id       string
	currency string
	payments checkout.PaymentInitializer
	observer Observer

	mu       sync.Mutex
	closed   bool
	catalog  *catalog.Snapshot
	cart     *cart.Store
	view     *view.Selector
	checkout *checkout.Coordinator
}

func newSession(id string, snap *catalog.Snapshot, cfg checkout.Config, scheduler checkout.Scheduler, payments checkout.PaymentInitializer, observer Observer) *Session {
	if scheduler == nil {
		scheduler = checkout.ClockScheduler{}
	}
	if observer == nil {
		observer = nopObserver{}
	}

	s := &Session{
		id:       id,
		currency: cfg.Currency,
		payments: payments,
		observer: observer,
		catalog:  snap,
		cart:     cart.New(),
		view:     view.NewSelector(snap.FirstCategory()),
	}
	s.checkout = checkout.New(s.cart, cfg, lockedScheduler{mu: &s.mu, next: scheduler}, observer)
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	lines := s.cart.Lines()
	views := make([]LineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, LineView{
			ID:          line.ID,
			Name:        line.Name,
			Description: line.Description,
			Image:       line.Image,
			Price:       money(line.Price),
			Quantity:    line.Quantity,
			Subtotal:    money(line.Subtotal()),
		})
	}

	return State{
		ID:        s.id,
		Lines:     views,
		Total:     money(s.cart.Total()),
		ItemCount: s.cart.ItemCount(),
		Currency:  s.currency,
		Flags:     s.checkout.Flags(),
		Checkout:  s.checkout.State(),
		Error:     s.checkout.LastError(),
		View:      s.view.Selection(),
	}
}

func (s *Session) Categories() []models.Category {
	out := make([]models.Category, len(s.catalog.Categories))
	copy(out, s.catalog.Categories)
	return out
}

func (s *Session) MenuItems() []models.MenuItem {
	out := make([]models.MenuItem, len(s.catalog.Items))
	copy(out, s.catalog.Items)
	return out
}

// VisibleItems applies the current view selection to the catalog.
func (s *Session) VisibleItems() []models.MenuItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Visible(s.catalog.Items)
}

func (s *Session) SelectCategory(name string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog.Category(name); !ok {
		return s.stateLocked(), categoryNotFound(name)
	}
	s.view.SelectCategory(name)
	return s.stateLocked(), nil
}

func (s *Session) OpenCategory(name string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog.Category(name); !ok {
		return s.stateLocked(), categoryNotFound(name)
	}
	s.view.OpenCategory(name)
	return s.stateLocked(), nil
}

func (s *Session) CloseCategory() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.CloseCategory()
	return s.stateLocked()
}

func (s *Session) SelectSubcategory(category, subcategory string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, ok := s.catalog.Category(category)
	if !ok {
		return s.stateLocked(), categoryNotFound(category)
	}
	if !cat.HasSubcategory(subcategory) {
		return s.stateLocked(), apperrors.New(apperrors.CodeNotFound, "subcategory not found").
			WithDetails(map[string]any{"category": category, "subcategory": subcategory})
	}
	s.view.SelectSubcategory(category, subcategory)
	return s.stateLocked(), nil
}

func (s *Session) Back() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Back()
	return s.stateLocked()
}

// AddItem adds one unit of a catalog item to the cart. Cart edits are refused
// while a submission is in flight so the charged draft matches the cart.
func (s *Session) AddItem(itemID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.catalog.Item(itemID)
	if !ok {
		return s.stateLocked(), apperrors.New(apperrors.CodeNotFound, "menu item not found").
			WithDetails(map[string]any{"itemId": itemID})
	}
	if err := s.checkout.CartEditable(); err != nil {
		return s.stateLocked(), err
	}
	s.cart.Add(item)
	s.observer.CartMutated("add")
	return s.stateLocked(), nil
}

func (s *Session) UpdateQuantity(itemID string, quantity int) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkout.CartEditable(); err != nil {
		return s.stateLocked(), err
	}
	s.cart.UpdateQuantity(itemID, quantity)
	s.observer.CartMutated("update")
	return s.stateLocked(), nil
}

func (s *Session) RemoveItem(itemID string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkout.CartEditable(); err != nil {
		return s.stateLocked(), err
	}
	s.cart.Remove(itemID)
	s.observer.CartMutated("remove")
	return s.stateLocked(), nil
}

func (s *Session) ClearCart() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkout.CartEditable(); err != nil {
		return s.stateLocked(), err
	}
	s.cart.Clear()
	s.observer.CartMutated("clear")
	return s.stateLocked(), nil
}

func (s *Session) SetCartOpen(open bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if open {
		s.cart.Open()
	} else {
		s.cart.Close()
	}
	return s.stateLocked()
}

// BeginCheckout reports whether the payment method chooser opened.
func (s *Session) BeginCheckout() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.checkout.Begin()
	return s.stateLocked(), ok
}

// ChooseMethod returns the chat deep link for the messaging method and an
// empty string for the payment form.
func (s *Session) ChooseMethod(method models.PaymentMethod) (string, State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !method.Valid() {
		return "", s.stateLocked(), apperrors.New(apperrors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"method": method})
	}

	if method == models.PaymentMethodWhatsApp {
		link, err := s.checkout.ChooseMessaging()
		return link, s.stateLocked(), err
	}
	err := s.checkout.ChoosePaymentForm()
	return "", s.stateLocked(), err
}

func (s *Session) CancelCheckout() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.checkout.Cancel()
	return s.stateLocked(), err
}

// SubmitCheckout validates the form under the lock, calls the payment service
// without holding it, then applies the outcome.
func (s *Session) SubmitCheckout(ctx context.Context, form checkout.Form) (checkout.Result, State, error) {
	s.mu.Lock()
	draft, err := s.checkout.PrepareSubmission(form)
	if err != nil {
		state := s.stateLocked()
		s.mu.Unlock()
		return checkout.Result{}, state, err
	}
	s.mu.Unlock()

	var resp *models.PaymentResponse
	if s.payments == nil {
		err = apperrors.New(apperrors.CodeInternal, "payment service unavailable")
	} else {
		resp, err = s.payments.InitializePayment(ctx, draft)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.checkout.CompleteSubmission(resp, err)
	return result, s.stateLocked(), err
}

// Close cancels pending deferred work. It reports whether this call closed
// the session.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.closed = true
	s.checkout.Close()
	return true
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func categoryNotFound(name string) error {
	return apperrors.New(apperrors.CodeNotFound, "category not found").
		WithDetails(map[string]any{"category": name})
}
