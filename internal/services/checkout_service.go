package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/ankirsydii/Orderly/internal/cart"
	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/realtime"
	"github.com/ankirsydii/Orderly/internal/repository"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInsufficientCash = errors.New("cash received is less than the total due")
	ErrNotSubmittable   = errors.New("checkout is not in a submittable state")
)

type CheckoutState string

const (
	CheckoutIdle         CheckoutState = "idle"
	CheckoutAwaitingCash CheckoutState = "awaiting_cash"
	CheckoutValidated    CheckoutState = "validated"
	CheckoutSubmitting   CheckoutState = "submitting"
	CheckoutCommitted    CheckoutState = "committed"
)

// Checkout is one payment dialog: it owns the cart for the duration and
// gates submission behind the cash-received check.
type Checkout struct {
	state       CheckoutState
	cart        *cart.Cart
	cashierName string
	cash        float64
	// total is fixed when the dialog opens; the cart cannot change while
	// payment is being taken, and change due must survive the cart being
	// cleared on commit.
	total float64
}

func (co *Checkout) State() CheckoutState { return co.state }
func (co *Checkout) Cart() *cart.Cart     { return co.cart }
func (co *Checkout) Cash() float64        { return co.cash }
func (co *Checkout) Total() float64       { return co.total }

// EnterCash takes the free-form text from the cash field. A value that does
// not parse counts as zero rather than erroring: the cashier sees "short by
// the full total" and the submit gate stays closed, so the typo cannot slip
// through.
func (co *Checkout) EnterCash(input string) {
	amount, err := strconv.ParseFloat(input, 64)
	if err != nil {
		amount = 0
	}
	co.cash = amount
	if co.state == CheckoutAwaitingCash || co.state == CheckoutValidated {
		if co.cash >= co.total {
			co.state = CheckoutValidated
		} else {
			co.state = CheckoutAwaitingCash
		}
	}
}

// ChangeDue is negative while the cash entered does not cover the total.
func (co *Checkout) ChangeDue() float64 {
	return co.cash - co.total
}

func (co *Checkout) CanSubmit() bool {
	return co.state == CheckoutValidated
}

// Cancel dismisses the payment dialog. The cart is left untouched so the
// cashier can reopen it or keep adding items.
func (co *Checkout) Cancel() {
	co.state = CheckoutIdle
}

type CheckoutService interface {
	Begin(crt *cart.Cart, cashierName string) (*Checkout, error)
	Submit(co *Checkout) (*models.Order, error)
	History() ([]models.Order, error)
}

type checkoutService struct {
	orderRepo repository.OrderRepository
	publisher ChangePublisher
	now       func() time.Time
}

func NewCheckoutService(orderRepo repository.OrderRepository, publisher ChangePublisher) CheckoutService {
	return &checkoutService{orderRepo: orderRepo, publisher: publisher, now: time.Now}
}

// Begin opens the payment dialog for a cart. An empty cart never gets one.
func (s *checkoutService) Begin(crt *cart.Cart, cashierName string) (*Checkout, error) {
	if crt == nil || crt.Empty() {
		return nil, ErrEmptyCart
	}
	return &Checkout{
		state:       CheckoutAwaitingCash,
		cart:        crt,
		cashierName: cashierName,
		total:       crt.Total(),
	}, nil
}

// Submit persists the order. The order number is assigned by the repository
// inside a transaction, so two tills submitting together cannot share one.
// On a store failure the checkout drops back to awaiting cash with the cart
// intact, ready for a manual retry.
func (s *checkoutService) Submit(co *Checkout) (*models.Order, error) {
	if !co.CanSubmit() {
		if co.state == CheckoutAwaitingCash {
			return nil, ErrInsufficientCash
		}
		return nil, ErrNotSubmittable
	}

	co.state = CheckoutSubmitting

	now := s.now()
	order := &models.Order{
		ID:          strconv.FormatInt(now.UnixMilli(), 10),
		Date:        now.Format(models.OrderDateLayout),
		TotalAmount: co.total,
		Items:       co.cart.OrderLines(),
		CashierName: co.cashierName,
	}

	if err := s.orderRepo.Create(order); err != nil {
		co.state = CheckoutAwaitingCash
		return nil, err
	}

	co.cart.Clear()
	co.state = CheckoutCommitted

	if err := s.publisher.PublishChange(context.Background(), realtime.OrdersCollection); err != nil {
		log.Printf("checkout: failed to publish change: %v", err)
	}

	return order, nil
}

// History is the order list every till and dashboard renders, newest first.
func (s *checkoutService) History() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}
