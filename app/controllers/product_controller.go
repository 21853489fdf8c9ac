package controllers

import (
	"errors"
	"net/http"

	"github.com/arifhossen/shopd/app/models"
	"github.com/arifhossen/shopd/app/repositories"
	"github.com/arifhossen/shopd/app/services"
	"github.com/arifhossen/shopd/pkg/bind"
	"github.com/arifhossen/shopd/pkg/logger"
	"github.com/arifhossen/shopd/pkg/response"
	"github.com/arifhossen/shopd/pkg/router"
)

// ProductController exposes the catalog CRUD surface.
type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// ListByOwner handles GET /shoe/{email}: every product whose owner email
// matches the path parameter, as a bare JSON array.
func (c *ProductController) ListByOwner(w http.ResponseWriter, r *http.Request) {
	email := router.Param(r, "email")

	products, err := c.service.ListByOwner(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list products", "error", err.Error())
		response.ServerError(w)
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// GetOne handles GET /singleshoe/{id}/{email}.
func (c *ProductController) GetOne(w http.ResponseWriter, r *http.Request) {
	idHex := router.Param(r, "id")
	email := router.Param(r, "email")

	product, err := c.service.GetOne(r.Context(), idHex, email)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.ClientError(w, http.StatusBadRequest, "invalid ID format")
	case errors.Is(err, repositories.ErrNotFound):
		response.ClientError(w, http.StatusNotFound, "Product not found")
	case err != nil:
		logger.WithCtx(r.Context()).Error("get product", "error", err.Error())
		response.ServerError(w)
	default:
		response.JSON(w, http.StatusOK, product)
	}
}

// Add handles POST /addshoe: insert the record verbatim, owner email
// included. No field validation, by contract.
func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if _, err := bind.JSON(r, &product); err != nil {
		response.ClientError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := c.service.Add(r.Context(), product)
	if err != nil {
		logger.WithCtx(r.Context()).Error("add product", "error", err.Error())
		response.ServerError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Shoe Added Successfully",
		"result": map[string]interface{}{
			"insertedId": id.Hex(),
		},
	})
}

// Update handles PATCH /updateshoe/{id}: full replace of the fixed field
// set. The raw storage counts are the response body.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	idHex := router.Param(r, "id")

	var fields models.ProductFields
	if _, err := bind.JSON(r, &fields); err != nil {
		response.ClientError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := c.service.Update(r.Context(), idHex, fields)
	switch {
	case errors.Is(err, services.ErrInvalidID):
		response.ClientError(w, http.StatusBadRequest, "invalid ID format")
	case err != nil:
		logger.WithCtx(r.Context()).Error("update product", "error", err.Error())
		response.ServerError(w)
	default:
		response.JSON(w, http.StatusOK, result)
	}
}

// DeleteManyRequest is the body of DELETE /deleteshoe.
type DeleteManyRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// DeleteMany handles DELETE /deleteshoe: remove each identified record in
// order. Unmatched and malformed ids are skipped silently; once the sweep
// completes the response is a success regardless.
func (c *ProductController) DeleteMany(w http.ResponseWriter, r *http.Request) {
	var req DeleteManyRequest
	errs, err := bind.JSON(r, &req)
	if err != nil || errs != nil {
		response.ClientError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := c.service.DeleteMany(r.Context(), req.IDs); err != nil {
		logger.WithCtx(r.Context()).Error("delete products", "error", err.Error())
		response.ServerError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Shoes Deleted Successfully",
	})
}

// DeleteAll handles DELETE /deleteall: clear the catalog unconditionally.
func (c *ProductController) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if _, err := c.service.DeleteAll(r.Context()); err != nil {
		logger.WithCtx(r.Context()).Error("delete all products", "error", err.Error())
		response.ServerError(w)
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "All Shoes Deleted",
	})
}

// Liveness handles GET /.
func Liveness(w http.ResponseWriter, _ *http.Request) {
	response.Text(w, http.StatusOK, "Shop Is Running")
}
