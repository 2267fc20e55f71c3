// Package realtime turns collection change signals into live snapshot
// streams, the way the backing store's listeners deliver whole collections
// to the screens that render them.
package realtime

import (
	"context"
	"log"
	"sync"

	"github.com/ankirsydii/Orderly/internal/models"
)

const (
	ProductsCollection = "products"
	OrdersCollection   = "orders"
)

// Notifier delivers a signal whenever a collection changed. The cancel func
// returned by SubscribeChanges releases the underlying subscription.
type Notifier interface {
	SubscribeChanges(ctx context.Context, collection string) (<-chan struct{}, func())
}

type ProductSource interface {
	GetAll() ([]models.Product, error)
}

type OrderSource interface {
	GetAll() ([]models.Order, error)
}

// ProductFeed streams full catalog snapshots to subscribers.
type ProductFeed struct {
	source   ProductSource
	notifier Notifier
}

func NewProductFeed(source ProductSource, notifier Notifier) *ProductFeed {
	return &ProductFeed{source: source, notifier: notifier}
}

// Subscribe emits the current catalog immediately, then a fresh snapshot
// after every change signal. The returned cancel func must be called on
// teardown; it is safe to call more than once. Snapshots coalesce, so a
// consumer that falls behind sees the latest state rather than a backlog.
func (f *ProductFeed) Subscribe(ctx context.Context) (<-chan []models.Product, func(), error) {
	initial, err := f.source.GetAll()
	if err != nil {
		return nil, nil, err
	}

	snapshots := make(chan []models.Product, 1)
	signals, stop := f.notifier.SubscribeChanges(ctx, ProductsCollection)

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			stop()
			close(done)
		})
	}

	go func() {
		defer close(snapshots)
		sendProducts(snapshots, initial)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-done:
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				products, err := f.source.GetAll()
				if err != nil {
					log.Printf("product feed: reload failed: %v", err)
					continue
				}
				sendProducts(snapshots, products)
			}
		}
	}()

	return snapshots, cancel, nil
}

// OrderFeed streams full order-history snapshots, newest order first.
type OrderFeed struct {
	source   OrderSource
	notifier Notifier
}

func NewOrderFeed(source OrderSource, notifier Notifier) *OrderFeed {
	return &OrderFeed{source: source, notifier: notifier}
}

func (f *OrderFeed) Subscribe(ctx context.Context) (<-chan []models.Order, func(), error) {
	initial, err := f.source.GetAll()
	if err != nil {
		return nil, nil, err
	}

	snapshots := make(chan []models.Order, 1)
	signals, stop := f.notifier.SubscribeChanges(ctx, OrdersCollection)

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			stop()
			close(done)
		})
	}

	go func() {
		defer close(snapshots)
		sendOrders(snapshots, initial)
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case <-done:
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				orders, err := f.source.GetAll()
				if err != nil {
					log.Printf("order feed: reload failed: %v", err)
					continue
				}
				sendOrders(snapshots, orders)
			}
		}
	}()

	return snapshots, cancel, nil
}

// sendProducts replaces any undelivered snapshot with the newer one.
func sendProducts(ch chan []models.Product, snapshot []models.Product) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

func sendOrders(ch chan []models.Order, snapshot []models.Order) {
	for {
		select {
		case ch <- snapshot:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
