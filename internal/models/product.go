package models

// DefaultProductColor is the card color used when the admin does not pick one.
const DefaultProductColor int64 = 0xFF6C5CE7

type Product struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Category    string  `json:"category"`
	ColorHex    int64   `json:"color_hex"`
	IsAvailable bool    `json:"is_available" gorm:"default:true"`
	ImageURL    string  `json:"image_url"`
}

type ProductCategory string

const (
	CategoryMinuman ProductCategory = "Minuman"
	CategoryBoba    ProductCategory = "Boba"
	CategoryNasi    ProductCategory = "Nasi"
	CategorySnack   ProductCategory = "Snack"
)
