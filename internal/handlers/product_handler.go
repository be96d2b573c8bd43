package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/shopspring/decimal"
)

// ProductFields holds the fields shared by the create and update payloads.
type ProductFields struct {
	Name           string           `json:"name" validate:"notblank,length=3-50"`
	Brand          string           `json:"brand" validate:"notblank,length=3-50"`
	Size           string           `json:"size"`
	Price          *decimal.Decimal `json:"price" validate:"required,gte=1.00,lte=99999999.00"`
	PrincipalImage string           `json:"principal_image" validate:"notblank,image_url"`
	OtherImages    []string         `json:"other_images"`
}

func (f ProductFields) toDomain(sku string) models.Product {
	product := models.Product{
		Sku:            sku,
		Name:           f.Name,
		Brand:          f.Brand,
		Size:           f.Size,
		PrincipalImage: f.PrincipalImage,
		OtherImages:    f.OtherImages,
	}
	if f.Price != nil {
		product.Price = *f.Price
	}
	return product
}

// CreateProductRequest is the body of POST /product.
type CreateProductRequest struct {
	Sku string `json:"sku" validate:"notblank,length=11-12,sku"`
	ProductFields
}

// UpdateProductRequest is the body of PUT /product/:sku. The sku comes from the path.
type UpdateProductRequest struct {
	ProductFields
}

// DataResponse is the wire form of a product.
type DataResponse struct {
	Sku            string      `json:"sku"`
	Name           string      `json:"name"`
	Brand          string      `json:"brand"`
	Size           string      `json:"size"`
	Price          json.Number `json:"price"`
	PrincipalImage string      `json:"principal_image"`
	OtherImages    []string    `json:"other_images"`
}

func newDataResponse(p models.Product) DataResponse {
	return DataResponse{
		Sku:            p.Sku,
		Name:           p.Name,
		Brand:          p.Brand,
		Size:           p.Size,
		Price:          json.Number(p.Price.StringFixed(2)),
		PrincipalImage: p.PrincipalImage,
		OtherImages:    p.OtherImages,
	}
}

// Link is a hypermedia reference.
type Link struct {
	Href string `json:"href"`
}

// ProductResponse wraps a product with navigation links.
type ProductResponse struct {
	Data  DataResponse    `json:"data"`
	Links map[string]Link `json:"_links"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	basePath string // route group prefix, used to build links
}

// NewProductHandler creates a new ProductHandler. basePath must match the
// prefix of the router later passed to RegisterRoutes.
func NewProductHandler(service *services.ProductService, basePath string) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
		basePath: strings.TrimSuffix(basePath, "/"),
	}
}

// RegisterRoutes registers the product routes with the Fiber router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/product", h.HandleCreateProduct)
	router.Get("/product/:sku", h.HandleGetProductBySku)
	router.Put("/product/:sku", h.HandleUpdateProduct)
	router.Get("/products", h.HandleGetProducts)
	router.Delete("/product/:sku", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}
	log.Printf("request: %+v", req)

	product, err := h.service.SaveProduct(c.UserContext(), req.toDomain(req.Sku))
	if err != nil {
		return err
	}
	log.Printf("response: %+v", *product)
	return c.Status(fiber.StatusCreated).JSON(h.envelope(c, *product))
}

// HandleGetProductBySku retrieves a single product by its sku.
func (h *ProductHandler) HandleGetProductBySku(c *fiber.Ctx) error {
	sku, err := h.skuParam(c)
	if err != nil {
		return err
	}
	log.Printf("sku: %s", sku)

	product, err := h.service.GetProductBySku(c.UserContext(), sku)
	if err != nil {
		return err
	}
	log.Printf("response: %+v", *product)
	return c.Status(fiber.StatusOK).JSON(h.envelope(c, *product))
}

// HandleUpdateProduct replaces a product and answers with its previous state.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	sku, err := h.skuParam(c)
	if err != nil {
		return err
	}
	var req UpdateProductRequest
	if err := h.parseBody(c, &req); err != nil {
		return err
	}
	log.Printf("sku: %s", sku)
	log.Printf("request: %+v", req)

	product, err := h.service.UpdateProductBySku(c.UserContext(), sku, req.toDomain(sku))
	if err != nil {
		return err
	}
	log.Printf("response: %+v", *product)
	return c.Status(fiber.StatusCreated).JSON(h.envelope(c, *product))
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		responses = append(responses, h.envelope(c, product))
	}
	return c.Status(fiber.StatusOK).JSON(responses)
}

// HandleDeleteProduct deletes a product by its sku.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	sku, err := h.skuParam(c)
	if err != nil {
		return err
	}
	log.Printf("sku: %s", sku)

	if err := h.service.DeleteProductBySku(c.UserContext(), sku); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseBody decodes the JSON body into req and validates it.
func (h *ProductHandler) parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return &ValidationError{Details: []string{"Malformed request body"}}
	}
	return checkRules(h.validate, req)
}

func (h *ProductHandler) skuParam(c *fiber.Ctx) (string, error) {
	// Copy: fiber reuses the underlying buffer once the handler returns.
	sku := utils.CopyString(c.Params("sku"))
	if err := h.validate.Var(sku, "sku"); err != nil {
		return "", &ValidationError{Details: []string{skuFormatMessage}}
	}
	return sku, nil
}

func (h *ProductHandler) productURL(c *fiber.Ctx, sku string) string {
	return c.BaseURL() + h.basePath + "/product/" + sku
}

func (h *ProductHandler) envelope(c *fiber.Ctx, product models.Product) ProductResponse {
	href := h.productURL(c, product.Sku)
	return ProductResponse{
		Data: newDataResponse(product),
		Links: map[string]Link{
			"self":    {Href: href},
			"product": {Href: href},
		},
	}
}
