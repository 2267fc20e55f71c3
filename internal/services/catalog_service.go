package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/realtime"
	"github.com/ankirsydii/Orderly/internal/repository"
)

// ChangePublisher fans a collection-changed signal out to the realtime
// feeds after every successful write.
type ChangePublisher interface {
	PublishChange(ctx context.Context, collection string) error
}

type ProductRequest struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Category string  `json:"category"`
	ColorHex int64   `json:"color_hex"`
	ImageURL string  `json:"image_url"`
}

type CatalogService interface {
	AddProduct(req ProductRequest) (*models.Product, error)
	UpdateProduct(id string, req ProductRequest) (*models.Product, error)
	SetAvailability(id string, available bool) (*models.Product, error)
	DeleteProduct(id string) error
	GetProduct(id string) (*models.Product, error)
	GetProducts(category string) ([]models.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	publisher   ChangePublisher
}

func NewCatalogService(productRepo repository.ProductRepository, publisher ChangePublisher) CatalogService {
	return &catalogService{productRepo: productRepo, publisher: publisher}
}

func (s *catalogService) AddProduct(req ProductRequest) (*models.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	color := req.ColorHex
	if color == 0 {
		color = models.DefaultProductColor
	}

	product := &models.Product{
		ID:          strconv.FormatInt(time.Now().UnixMilli(), 10),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		ColorHex:    color,
		IsAvailable: true,
		ImageURL:    req.ImageURL,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.notifyChanged()
	return product, nil
}

// UpdateProduct overwrites the stored record wholesale, the same last-write-
// wins semantics every other writer gets.
func (s *catalogService) UpdateProduct(id string, req ProductRequest) (*models.Product, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Category = req.Category
	if req.ColorHex != 0 {
		product.ColorHex = req.ColorHex
	}
	product.ImageURL = req.ImageURL

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.notifyChanged()
	return product, nil
}

func (s *catalogService) SetAvailability(id string, available bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.IsAvailable = available
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	s.notifyChanged()
	return product, nil
}

func (s *catalogService) DeleteProduct(id string) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}

	s.notifyChanged()
	return nil
}

func (s *catalogService) GetProduct(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) GetProducts(category string) ([]models.Product, error) {
	if category == "" || category == "All" {
		return s.productRepo.GetAll()
	}
	return s.productRepo.GetByCategory(category)
}

// Notifications are best effort: a missed signal only delays the next
// snapshot, it never loses data.
func (s *catalogService) notifyChanged() {
	if err := s.publisher.PublishChange(context.Background(), realtime.ProductsCollection); err != nil {
		log.Printf("catalog: failed to publish change: %v", err)
	}
}
