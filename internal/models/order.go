package models

import "time"

// OrderDateLayout is the fixed format orders carry their creation time in.
const OrderDateLayout = "02 Jan 2006, 15:04"

// Order is immutable after creation: there is no update or delete path for
// it anywhere in the codebase. Items are value snapshots taken at sale time,
// so later catalog edits never change past orders.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	OrderNumber int         `json:"order_number" gorm:"uniqueIndex;not null"`
	Date        string      `json:"date" gorm:"not null"`
	TotalAmount float64     `json:"total_amount" gorm:"not null"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CashierName string      `json:"cashier_name"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID          uint    `json:"-" gorm:"primaryKey"`
	OrderID     string  `json:"-" gorm:"index;not null"`
	ProductName string  `json:"product_name" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
}
