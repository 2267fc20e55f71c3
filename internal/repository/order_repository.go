package repository

import (
	"errors"

	"github.com/ankirsydii/Orderly/internal/models"

	"gorm.io/gorm"
)

// Two cashiers submitting at the same instant can observe the same order
// count; the unique index on order_number rejects the loser and we re-read
// the count. Three attempts is plenty for a handful of tills.
const orderNumberRetries = 3

var ErrOrderNumberConflict = errors.New("could not assign a unique order number")

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetAll() ([]models.Order, error)
	Count() (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create assigns the next order number (count of known orders + 1) and
// persists the order with its item snapshots in one transaction.
func (r *orderRepository) Create(order *models.Order) error {
	var err error
	for attempt := 0; attempt < orderNumberRetries; attempt++ {
		err = r.db.Transaction(func(tx *gorm.DB) error {
			var count int64
			if err := tx.Model(&models.Order{}).Count(&count).Error; err != nil {
				return err
			}
			order.OrderNumber = int(count) + 1
			return tx.Create(order).Error
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		// A concurrent submission won the number; drop the half-assigned
		// item keys so the retry inserts fresh rows.
		for i := range order.Items {
			order.Items[i].ID = 0
		}
	}
	return ErrOrderNumberConflict
}

func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAll returns the full history newest-first by order number, the same
// ordering the store's snapshot listeners deliver.
func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("order_number DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}
