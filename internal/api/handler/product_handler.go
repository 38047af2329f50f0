package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/farm2door/marketplace/internal/api/middleware"
	"github.com/farm2door/marketplace/internal/core/domain"
	"github.com/farm2door/marketplace/internal/core/ports"
)

// ProductHandler handles HTTP requests for the produce catalog.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create adds a new produce listing owned by the authenticated farmer.
//
// @Summary      Create a product listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Listing details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return domain.NewUnauthorized("Authentication required")
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError(domain.FieldError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		FarmerID:           identity.UserID,
		Name:               req.Name,
		Description:        req.Description,
		FarmName:           req.FarmName,
		FarmType:           req.FarmType,
		RegistrationNumber: req.RegistrationNumber,
		Stage:              req.Stage,
		UnitPrice:          req.UnitPrice,
		Unit:               req.Unit,
		Quantity:           req.Quantity,
		HarvestDate:        req.HarvestDate,
		ImageURL:           req.ImageURL,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, toProductResponse(product))
}

// Get returns a single product by id. Public.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id  path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]any
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toProductResponse(product))
}

// List returns a page of products. Public; farmers can scope to their own
// listings with ?farmer_id=me.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        search     query  string  false  "Partial match on name or farm name"
// @Param        stage      query  string  false  "Filter by planting stage"
// @Param        farmer_id  query  string  false  "Filter by farmer id ('me' for own listings)"
// @Param        limit      query  int     false  "Page size (1-100, default 20)"
// @Param        offset     query  int     false  "Items to skip"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page, err := bindPage(c)
	if err != nil {
		return err
	}

	filter := ports.ProductFilter{
		Search:   c.QueryParam("search"),
		FarmerID: c.QueryParam("farmer_id"),
		Page:     page,
	}
	if stage := c.QueryParam("stage"); stage != "" {
		if !domain.ValidPlantingStage(domain.PlantingStage(stage)) {
			return domain.NewValidationError(domain.FieldError{
				Field:   "stage",
				Message: "stage must be one of: just_planted, growing, ready_soon, ready_now, harvesting, finished",
			})
		}
		filter.Stage = domain.PlantingStage(stage)
	}
	if filter.FarmerID == "me" {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			return domain.NewUnauthorized("Authentication required")
		}
		filter.FarmerID = identity.UserID
	}

	result, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, toProductResponses(result.Items), result.Total, result.Page)
}

// Update modifies a listing. Owning farmer or admin only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError(domain.FieldError{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	product, err := h.service.Update(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Stage:       req.Stage,
		UnitPrice:   req.UnitPrice,
		Quantity:    req.Quantity,
		HarvestDate: req.HarvestDate,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, toProductResponse(product))
}

// Delete removes a listing. Owning farmer or admin only.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]string{"message": "Product deleted"})
}
