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

type SubCategoryHandler struct {
	DB *mongo.Database
}

func NewSubCategoryHandler(db *mongo.Database) *SubCategoryHandler {
	return &SubCategoryHandler{DB: db}
}

func (h *SubCategoryHandler) subcategories() *mongo.Collection {
	return h.DB.Collection("subcategories")
}

func (h *SubCategoryHandler) AddSubCategory(c *gin.Context) {
	var input struct {
		Name       string `json:"name" binding:"required"`
		CategoryID string `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Sub-category name and category id are required"))
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var category models.Category
	if err := h.DB.Collection("categories").FindOne(ctx, bson.M{"_id": categoryID}).Decode(&category); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Category not found"))
		return
	}

	var existing models.SubCategory
	err = h.subcategories().FindOne(ctx, bson.M{"name": input.Name, "category": categoryID}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, utils.ErrorResponse(http.StatusConflict, "Sub-category already exists in this category"))
		return
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the sub-category"))
		return
	}

	subCategory := models.SubCategory{
		Name:       input.Name,
		CategoryID: categoryID,
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	res, err := h.subcategories().InsertOne(ctx, subCategory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the sub-category"))
		return
	}
	subCategory.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Sub-category added successfully!", gin.H{"subCategory": subCategory}))
}

func (h *SubCategoryHandler) UpdateSubCategory(c *gin.Context) {
	subCategoryID, err := primitive.ObjectIDFromHex(c.Param("subCategoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid sub-category id"))
		return
	}

	var input struct {
		Name       string `json:"name"`
		CategoryID string `json:"categoryId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid request body"))
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
			return
		}
		set["category"] = categoryID
	}
	if len(set) == 1 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Provide at least one field to update"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var subCategory models.SubCategory
	if err := h.subcategories().FindOneAndUpdate(ctx, bson.M{"_id": subCategoryID}, bson.M{"$set": set}, opts).Decode(&subCategory); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Sub-category not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the sub-category"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Sub-category updated successfully!", gin.H{"subCategory": subCategory}))
}

func (h *SubCategoryHandler) ToggleSubCategory(c *gin.Context) {
	subCategoryID, err := primitive.ObjectIDFromHex(c.Param("subCategoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid sub-category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var subCategory models.SubCategory
	if err := h.subcategories().FindOne(ctx, bson.M{"_id": subCategoryID}).Decode(&subCategory); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Sub-category not found"))
		return
	}

	subCategory.IsActive = !subCategory.IsActive
	subCategory.UpdatedAt = time.Now()
	if _, err := h.subcategories().UpdateOne(ctx,
		bson.M{"_id": subCategoryID},
		bson.M{"$set": bson.M{"isActive": subCategory.IsActive, "updatedAt": subCategory.UpdatedAt}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the sub-category"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Sub-category status updated successfully!", gin.H{"subCategory": subCategory}))
}

func (h *SubCategoryHandler) DeleteSubCategory(c *gin.Context) {
	subCategoryID, err := primitive.ObjectIDFromHex(c.Param("subCategoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid sub-category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := h.subcategories().DeleteOne(ctx, bson.M{"_id": subCategoryID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while deleting the sub-category"))
		return
	}
	if res.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Sub-category not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Sub-category deleted successfully!", nil))
}

func (h *SubCategoryHandler) GetAllSubCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.subcategories().Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching sub-categories"))
		return
	}
	defer cursor.Close(ctx)

	subCategories := []models.SubCategory{}
	if err := cursor.All(ctx, &subCategories); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching sub-categories"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Sub-categories fetched successfully!", gin.H{"subCategories": subCategories}))
}

func (h *SubCategoryHandler) GetSubCategoryByID(c *gin.Context) {
	subCategoryID, err := primitive.ObjectIDFromHex(c.Param("subCategoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid sub-category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var subCategory models.SubCategory
	if err := h.subcategories().FindOne(ctx, bson.M{"_id": subCategoryID}).Decode(&subCategory); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Sub-category not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Sub-category fetched successfully!", gin.H{"subCategory": subCategory}))
}

// GetSubCategoriesByCategory lists the active sub-categories of one
// category for the storefront.
func (h *SubCategoryHandler) GetSubCategoriesByCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("categoryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid category id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := h.subcategories().Find(ctx, bson.M{"category": categoryID, "isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching sub-categories"))
		return
	}
	defer cursor.Close(ctx)

	subCategories := []models.SubCategory{}
	if err := cursor.All(ctx, &subCategories); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching sub-categories"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Sub-categories fetched successfully!", gin.H{"subCategories": subCategories}))
}
