package services

import (
	"context"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	log       *logrus.Logger
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no catalog events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, log *logrus.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// ListProducts retrieves all products. The result is never nil.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// CreateProduct stores a new product; its ID is assigned by the repository.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	created := *product
	s.publish(EventProductCreated, product.ID, &created)
	return nil
}

// UpdateProduct replaces all fields of the product with the given ID.
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, product *models.Product) (*models.Product, error) {
	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return nil, err
	}
	snapshot := *updated
	s.publish(EventProductUpdated, id, &snapshot)
	return updated, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, id, nil)
	return nil
}

// Healthy reports whether the backing store is reachable.
func (s *ProductService) Healthy(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// publish emits a catalog event. Failures are logged and never returned:
// the change is already committed.
func (s *ProductService) publish(eventType string, id uint, product *models.Product) {
	if s.publisher == nil {
		return
	}
	entry := s.log.WithFields(logrus.Fields{"event": eventType, "product_id": id})

	body, err := ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	}.Encode()
	if err != nil {
		entry.WithError(err).Warn("Failed to encode catalog event")
		return
	}
	if err := s.publisher.Publish(eventType, body); err != nil {
		entry.WithError(err).Warn("Failed to publish catalog event")
		return
	}
	entry.Debug("Published catalog event")
}
