package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type CategoryHandler struct {
	DB *mongo.Database
}

func NewCategoryHandler(db *mongo.Database) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

func (h *CategoryHandler) categories() *mongo.Collection {
	return h.DB.Collection("categories")
}

func (h *CategoryHandler) AddCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Category name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.Category
	err := h.categories().FindOne(ctx, bson.M{"name": input.Name}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, utils.ErrorResponse(http.StatusConflict, "Category already exists"))
		return
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the category"))
		return
	}

	category := models.Category{
		Name:      input.Name,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	res, err := h.categories().InsertOne(ctx, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the category"))
		return
	}
	category.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Category added successfully!", gin.H{"category": category}))
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Category name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"name": input.Name, "updatedAt": time.Now()}}

	var category models.Category
	if err := h.categories().FindOneAndUpdate(ctx, bson.M{"_id": categoryID}, update, opts).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Category not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the category"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Category updated successfully!", gin.H{"category": category}))
}

// ToggleCategory flips the category's visibility on the storefront.
func (h *CategoryHandler) ToggleCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := h.categories().FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Category not found"))
		return
	}

	category.IsActive = !category.IsActive
	category.UpdatedAt = time.Now()
	if _, err := h.categories().UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{"$set": bson.M{"isActive": category.IsActive, "updatedAt": category.UpdatedAt}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the category"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Category status updated successfully!", gin.H{"category": category}))
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := h.categories().DeleteOne(ctx, bson.M{"_id": categoryID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while deleting the category"))
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Category not found"))
		return
	}

	// Orphaned sub-categories are removed with their parent.
	if _, err := h.DB.Collection("subcategories").DeleteMany(ctx, bson.M{"category": categoryID}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while deleting the category"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Category deleted successfully!", nil))
}

// GetAllCategories returns every category for the admin dashboard,
// inactive ones included.
func (h *CategoryHandler) GetAllCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.categories().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching categories"))
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching categories"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Categories fetched successfully!", gin.H{"categories": categories}))
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := h.categories().FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Category not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Category fetched successfully!", gin.H{"category": category}))
}

// GetActiveCategories is the storefront listing.
func (h *CategoryHandler) GetActiveCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.categories().Find(ctx, bson.M{"isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching categories"))
		return
	}
	defer cursor.Close(ctx)

	categories := []models.Category{}
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching categories"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Categories fetched successfully!", gin.H{"categories": categories}))
}
