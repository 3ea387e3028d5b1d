package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"nativedelight/internal/checkout"
	"nativedelight/internal/models"
)

type stubProvider struct {
	err error
}

func (p stubProvider) FetchCategories(ctx context.Context) ([]models.Category, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []models.Category{
		{ID: "c1", Name: "Soups", Subcategories: []models.Subcategory{{ID: "s1", Name: "Pepper"}}},
		{ID: "c2", Name: "Rice"},
	}, nil
}

func (p stubProvider) FetchMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []models.MenuItem{
		{ID: "a", Name: "A", Price: decimal.NewFromInt(2000), Category: models.MenuItemCategory{Name: "Soups", Subcategory: "Pepper"}},
		{ID: "b", Name: "B", Price: decimal.NewFromInt(1500), Category: models.MenuItemCategory{Name: "Rice"}},
	}, nil
}

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) checkout.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.fn()
		}
	}
}

type countingObserver struct {
	mu       sync.Mutex
	opened   int
	closed   int
	mutation map[string]int
	placed   int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{mutation: map[string]int{}}
}

func (o *countingObserver) OrderPlaced(models.PaymentMethod) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.placed++
}

func (o *countingObserver) PaymentRedirected() {}
func (o *countingObserver) SubmissionFailed()  {}

func (o *countingObserver) CartMutated(op string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mutation[op]++
}

func (o *countingObserver) SessionOpened() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened++
}

func (o *countingObserver) SessionClosed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed++
}

type stubPayments struct {
	resp  *models.PaymentResponse
	err   error
	calls int
}

func (p *stubPayments) InitializePayment(ctx context.Context, draft models.OrderDraft) (*models.PaymentResponse, error) {
	p.calls++
	return p.resp, p.err
}

func newTestManager(payments checkout.PaymentInitializer, obs *countingObserver) (*Manager, *manualScheduler) {
	m := NewManager(stubProvider{}, payments, Config{TTL: time.Hour, Capacity: 2}, obs, nil)
	sched := &manualScheduler{}
	m.scheduler = sched
	return m, sched
}

func validForm() checkout.Form {
	return checkout.Form{Name: "Ada", Email: "ada@example.com", Phone: "08031234567", Address: "Ikeja"}
}

// blockingPayments reports each draft on started and holds the call until
// release is closed.
type blockingPayments struct {
	started chan models.OrderDraft
	release chan struct{}
}

func newBlockingPayments() *blockingPayments {
	return &blockingPayments{started: make(chan models.OrderDraft, 1), release: make(chan struct{})}
}

func (p *blockingPayments) InitializePayment(ctx context.Context, draft models.OrderDraft) (*models.PaymentResponse, error) {
	p.started <- draft
	<-p.release
	return nil, nil
}
