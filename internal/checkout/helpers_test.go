package checkout

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"nativedelight/internal/cart"
	"nativedelight/internal/models"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// runPending fires every timer that was neither stopped nor fired.
func (s *fakeScheduler) runPending() int {
	fired := 0
	for _, t := range s.timers {
		if t.stopped || t.fired {
			continue
		}
		t.fired = true
		t.fn()
		fired++
	}
	return fired
}

func (s *fakeScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakePayments struct {
	resp  *models.PaymentResponse
	err   error
	calls int
	last  models.OrderDraft
}

func (p *fakePayments) InitializePayment(ctx context.Context, draft models.OrderDraft) (*models.PaymentResponse, error) {
	p.calls++
	p.last = draft
	return p.resp, p.err
}

type serverError struct {
	message string
}

func (e serverError) Error() string         { return "payment api: " + e.message }
func (e serverError) ServerMessage() string { return e.message }

type recordingObserver struct {
	placed    []models.PaymentMethod
	redirects int
	failures  int
}

func (o *recordingObserver) OrderPlaced(method models.PaymentMethod) { o.placed = append(o.placed, method) }
func (o *recordingObserver) PaymentRedirected()                      { o.redirects++ }
func (o *recordingObserver) SubmissionFailed()                       { o.failures++ }

func menuItem(id, name string, price int64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Price: decimal.NewFromInt(price)}
}

// scenarioCart holds A (2000 x2) and B (1500 x1).
func scenarioCart() *cart.Store {
	store := cart.New()
	a := menuItem("a", "A", 2000)
	store.Add(a)
	store.Add(a)
	store.Add(menuItem("b", "B", 1500))
	store.Open()
	return store
}

func validForm() Form {
	return Form{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Phone:   "08031234567",
		Address: "12 Allen Avenue, Ikeja",
	}
}

func newTestCoordinator(store *cart.Store) (*Coordinator, *fakeScheduler, *recordingObserver) {
	sched := &fakeScheduler{}
	obs := &recordingObserver{}
	c := New(store, Config{Currency: ""}, sched, obs)
	return c, sched, obs
}
