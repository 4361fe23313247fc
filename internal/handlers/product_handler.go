package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type ProductHandler struct {
	Repo repository.ProductRepository
}

func NewProductHandler(repo repository.ProductRepository) *ProductHandler {
	return &ProductHandler{Repo: repo}
}

// AddProduct creates a product from a multipart form. The image file is
// uploaded to Cloudinary under a random name before the document is
// written.
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var input struct {
		Name          string  `form:"name" validate:"required"`
		Description   string  `form:"description" validate:"required"`
		Price         float64 `form:"price" validate:"required,gt=0"`
		Stock         int     `form:"stock" validate:"gte=0"`
		CategoryID    string  `form:"categoryId" validate:"required"`
		SubCategoryID string  `form:"subCategoryId" validate:"required"`
		Sizes         string  `form:"sizes"`
		Colors        string  `form:"colors"`
		Material      string  `form:"material" validate:"required"`
		Style         string  `form:"style" validate:"required"`
		Tags          string  `form:"tags"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid form data"))
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "All product fields are required"))
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}
	subCategoryID, err := primitive.ObjectIDFromHex(input.SubCategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid sub-category id"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Product image is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Failed to read the product image"))
		return
	}
	defer file.Close()

	imageURL, err := utils.UploadToCloudinary(file, uuid.New().String())
	if err != nil {
		logrus.WithError(err).Error("Cloudinary upload failed")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Failed to upload the product image"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	product := models.Product{
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Image:         imageURL,
		Stock:         input.Stock,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		Sizes:         splitCSV(input.Sizes),
		Colors:        splitCSV(input.Colors),
		Material:      input.Material,
		Style:         input.Style,
		Tags:          splitCSV(input.Tags),
		IsActive:      true,
	}

	created, err := h.Repo.Create(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the product"))
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Product added successfully!", gin.H{"product": created}))
}

func splitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	var input models.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid request body"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.Repo.Update(ctx, productID, input)
	if err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Product updated successfully!", gin.H{"product": product}))
}

func (h *ProductHandler) UpdateProductImage(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Product image is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Failed to read the product image"))
		return
	}
	defer file.Close()

	imageURL, err := utils.UploadToCloudinary(file, uuid.New().String())
	if err != nil {
		logrus.WithError(err).Error("Cloudinary upload failed")
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Failed to upload the product image"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	product, err := h.Repo.UpdateImage(ctx, productID, imageURL)
	if err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the product image"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Product image updated successfully!", gin.H{"product": product}))
}

func (h *ProductHandler) ToggleProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.Repo.ToggleActive(ctx, productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Product status updated successfully!", gin.H{"product": product}))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	product, err := h.Repo.Find(ctx, bson.M{"_id": productID})
	if err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while deleting the product"))
		return
	}

	if err := h.Repo.Delete(ctx, productID); err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while deleting the product"))
		return
	}

	// Best effort image cleanup; the product is already gone either way.
	if publicID := utils.CloudinaryPublicID(product.Image); publicID != "" {
		if err := utils.DeleteFromCloudinary(publicID); err != nil {
			logrus.WithError(err).WithField("productId", productID.Hex()).Warn("Failed to delete product image")
		}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Product deleted successfully!", nil))
}

// GetAllProducts is the admin catalog listing: every product, inactive
// ones included, paginated.
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, total, err := h.Repo.List(ctx, bson.M{}, nil, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching products"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Products fetched successfully!", listingPayload(products, total, page, limit)))
}

// GetProducts is the storefront catalog: active products only, filtered
// by the query string and paginated.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := buildCatalogFilter(c)
	sort := catalogSort(c.Query("sort"))

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "12"), 10, 64)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, total, err := h.Repo.List(ctx, filter, sort, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching products"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Products fetched successfully!", listingPayload(products, total, page, limit)))
}

func listingPayload(products []models.Product, total, page, limit int64) models.ProductListing {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return models.ProductListing{
		Products:   products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

// buildCatalogFilter translates storefront query parameters into a Mongo
// filter. Multi-valued parameters are comma separated.
func buildCatalogFilter(c *gin.Context) bson.M {
	filter := bson.M{"isActive": true}

	if query := c.Query("query"); query != "" {
		filter["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": query, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": query, "$options": "i"}},
			bson.M{"tags": bson.M{"$regex": query, "$options": "i"}},
		}
	}

	if categories := splitCSV(c.Query("categories")); len(categories) > 0 {
		ids := make([]primitive.ObjectID, 0, len(categories))
		for _, raw := range categories {
			if id, err := primitive.ObjectIDFromHex(raw); err == nil {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			filter["category"] = bson.M{"$in": ids}
		}
	}
	if raw := c.Query("subcategory"); raw != "" {
		if id, err := primitive.ObjectIDFromHex(raw); err == nil {
			filter["subCategory"] = id
		}
	}

	if colors := splitCSV(c.Query("color")); len(colors) > 0 {
		filter["colors"] = bson.M{"$in": colors}
	}
	if sizes := splitCSV(c.Query("size")); len(sizes) > 0 {
		filter["sizes"] = bson.M{"$in": sizes}
	}
	if tags := splitCSV(c.Query("tags")); len(tags) > 0 {
		filter["tags"] = bson.M{"$in": tags}
	}

	if raw := c.Query("rating"); raw != "" {
		if rating, err := strconv.ParseFloat(raw, 64); err == nil {
			filter["rating"] = bson.M{"$gte": rating}
		}
	}

	price := bson.M{}
	if raw := c.Query("minPrice"); raw != "" {
		if min, err := strconv.ParseFloat(raw, 64); err == nil {
			price["$gte"] = min
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if max, err := strconv.ParseFloat(raw, 64); err == nil {
			price["$lte"] = max
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	return filter
}

func catalogSort(key string) bson.D {
	switch key {
	case "price_asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price_desc":
		return bson.D{{Key: "price", Value: -1}}
	case "rating":
		return bson.D{{Key: "rating", Value: -1}}
	case "oldest":
		return bson.D{{Key: "createdAt", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := h.Repo.Find(ctx, bson.M{"_id": productID})
	if err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching the product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Product fetched successfully!", gin.H{"product": product}))
}

// GetProductDetails is the admin detail view with category names and
// review authors joined in.
func (h *ProductHandler) GetProductDetails(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	details, err := h.Repo.DetailWithReviews(ctx, productID)
	if err != nil {
		if err == repository.ErrProductNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching the product"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Product details fetched successfully!", gin.H{"product": details}))
}

func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "12"), 10, 64)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"category": categoryID, "isActive": true}
	products, total, err := h.Repo.List(ctx, filter, nil, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching products"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Products fetched successfully!", listingPayload(products, total, page, limit)))
}

func (h *ProductHandler) GetProductsBySubCategory(c *gin.Context) {
	subCategoryID, err := primitive.ObjectIDFromHex(c.Param("subCategoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid sub-category id"))
		return
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "12"), 10, 64)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{"subCategory": subCategoryID, "isActive": true}
	products, total, err := h.Repo.List(ctx, filter, nil, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching products"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Products fetched successfully!", listingPayload(products, total, page, limit)))
}
