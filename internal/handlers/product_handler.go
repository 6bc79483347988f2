package handlers

import (
	"errors"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ProductRequest is the body accepted by create and update. Numeric fields are
// pointers so an absent value can be told apart from zero. Price is bounded by
// the numeric(12,4) column.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,notblank,max=255"`
	Description string   `json:"description" validate:"max=2000"`
	Price       *float64 `json:"price" validate:"required,gte=0,lte=99999999.9999"`
	Quantity    *int     `json:"quantity" validate:"required,gte=0"`
}

// Product converts the request into a model without an ID.
func (r ProductRequest) Product() models.Product {
	return models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Quantity:    *r.Quantity,
	}
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	log      *logrus.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
		log:      log,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.ListProducts(c.UserContext())
	if err != nil {
		h.logger(c).WithError(err).Error("Error fetching products")
		return fiber.NewError(fiber.StatusInternalServerError, msgFetchFailed)
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a product and returns it with its new ID.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, err := h.parseBody(c)
	if err != nil {
		return err
	}

	product := req.Product()
	if err := h.service.CreateProduct(c.UserContext(), &product); err != nil {
		h.logger(c).WithError(err).Error("Error creating product")
		return fiber.NewError(fiber.StatusInternalServerError, msgCreateFailed)
	}

	h.logger(c).WithField("product_id", product.ID).Info("Created product")
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces every field of an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := h.parseBody(c)
	if err != nil {
		return err
	}

	fields := req.Product()
	updated, err := h.service.UpdateProduct(c.UserContext(), id, &fields)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgProductNotFound)
		}
		h.logger(c).WithError(err).WithField("product_id", id).Error("Error updating product")
		return fiber.NewError(fiber.StatusInternalServerError, msgUpdateFailed)
	}

	h.logger(c).WithField("product_id", id).Info("Updated product")
	return c.JSON(updated)
}

// HandleDeleteProduct removes a product and answers with an empty 204.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return fiber.NewError(fiber.StatusNotFound, msgProductNotFound)
		}
		h.logger(c).WithError(err).WithField("product_id", id).Error("Error deleting product")
		return fiber.NewError(fiber.StatusInternalServerError, msgDeleteFailed)
	}

	h.logger(c).WithField("product_id", id).Info("Deleted product")
	return c.SendStatus(fiber.StatusNoContent)
}

// parseBody decodes the body as JSON whatever the Content-Type, then
// validates it.
func (h *ProductHandler) parseBody(c *fiber.Ctx) (ProductRequest, error) {
	var req ProductRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		h.logger(c).WithError(err).Warn("Error parsing product request body")
		return req, fiber.NewError(fiber.StatusBadRequest, msgInvalidBody)
	}
	if err := h.validate.Struct(req); err != nil {
		return req, &ValidationError{Fields: fieldErrors(err)}
	}
	return req, nil
}

func (h *ProductHandler) logger(c *fiber.Ctx) *logrus.Entry {
	return h.log.WithField("request_id", middleware.GetRequestID(c))
}

// parseID reads the :id route parameter, which must be a positive integer.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, msgInvalidID)
	}
	return uint(id), nil
}
