package controllers

import (
	"net/http"

	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"

	"github.com/gin-gonic/gin"
)

type ProductInput struct {
	CompanyID   uint    `json:"companyId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	Stock       int     `json:"stock" binding:"min=0"`
	IsActive    *bool   `json:"isActive"`
}

type StockInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type ProductController struct {
	base
}

func NewProductController(svc *services.Services) *ProductController {
	return &ProductController{base: newBase(svc)}
}

func (pc *ProductController) Create(c *gin.Context) {
	var input ProductInput
	if !bindJSON(c, &input) {
		return
	}
	if !pc.authorizeCompany(c, input.CompanyID) {
		return
	}
	product, err := pc.svc.Products.Create(c.Request.Context(), services.ProductInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.svc.Products.List(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) load(c *gin.Context) (*models.Product, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	product, err := pc.svc.Products.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch product")
		return nil, false
	}
	if !pc.authorizeCompany(c, product.CompanyID) {
		return nil, false
	}
	return product, true
}

func (pc *ProductController) Get(c *gin.Context) {
	product, ok := pc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Update(c *gin.Context) {
	product, ok := pc.load(c)
	if !ok {
		return
	}
	var input ProductInput
	input.CompanyID = product.CompanyID
	if !bindJSON(c, &input) {
		return
	}
	updated, err := pc.svc.Products.Update(c.Request.Context(), product.ID, services.ProductInput(input))
	if err != nil {
		respondServiceError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateStock takes the given quantity out of stock.
func (pc *ProductController) UpdateStock(c *gin.Context) {
	product, ok := pc.load(c)
	if !ok {
		return
	}
	var input StockInput
	if !bindJSON(c, &input) {
		return
	}
	updated, err := pc.svc.Products.UpdateStock(c.Request.Context(), product.ID, input.Quantity)
	if err != nil {
		respondServiceError(c, err, "Failed to update stock")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (pc *ProductController) Delete(c *gin.Context) {
	product, ok := pc.load(c)
	if !ok {
		return
	}
	if err := pc.svc.Products.Delete(c.Request.Context(), product.ID); err != nil {
		respondServiceError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}
