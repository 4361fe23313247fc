package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type AdminHandler struct {
	DB *mongo.Database
}

func NewAdminHandler(db *mongo.Database) *AdminHandler {
	return &AdminHandler{DB: db}
}

func (h *AdminHandler) admins() *mongo.Collection {
	return h.DB.Collection("admins")
}

// AddAdmin creates a new admin account. Only an already authenticated
// admin can reach this.
func (h *AdminHandler) AddAdmin(c *gin.Context) {
	var input models.AddAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "All fields are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.Admin
	err := h.admins().FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"email": input.Email}, bson.M{"username": strings.ToLower(input.Username)}},
	}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, utils.ErrorResponse(http.StatusConflict, "Admin with this username or email already exists"))
		return
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the admin"))
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the admin"))
		return
	}

	admin := models.Admin{
		Username:  strings.ToLower(input.Username),
		Email:     input.Email,
		Password:  hashed,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	res, err := h.admins().InsertOne(ctx, admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the admin"))
		return
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Admin added successfully!", gin.H{"admin": admin}))
}

func (h *AdminHandler) Login(c *gin.Context) {
	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Password is required"))
		return
	}
	if input.Email == "" && input.Username == "" {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Username or email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	err := h.admins().FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"email": input.Email}, bson.M{"username": strings.ToLower(input.Username)}},
	}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Admin does not exist"))
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while logging in"))
		return
	}

	if !utils.CheckPassword(admin.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid credentials"))
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID.Hex(), admin.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while generating tokens"))
		return
	}

	c.SetCookie("adminToken", token, 24*3600, "/", "", cookieSecure(), true)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Admin logged in successfully!", gin.H{
		"admin":      admin,
		"adminToken": token,
	}))
}

func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie("adminToken", "", -1, "/", "", cookieSecure(), true)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Admin logged out successfully!", nil))
}

func (h *AdminHandler) CheckAuthentication(c *gin.Context) {
	_, ok := currentAdminID(c)
	c.JSON(http.StatusOK, gin.H{"authenticated": ok})
}

func (h *AdminHandler) GetAdminDetails(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	if err := h.admins().FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Admin not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Admin details fetched successfully!", gin.H{"admin": admin}))
}

func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	adminID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	var input models.UpdateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid request body"))
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Username != "" {
		set["username"] = strings.ToLower(input.Username)
	}
	if input.Email != "" {
		set["email"] = input.Email
	}
	if len(set) == 1 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Provide at least one field to update"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var admin models.Admin
	if err := h.admins().FindOneAndUpdate(ctx, bson.M{"_id": adminID}, bson.M{"$set": set}, opts).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Admin not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Admin details updated successfully!", gin.H{"admin": admin}))
}

// GetAllUsers lists every registered customer for the admin dashboard.
func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.DB.Collection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching users"))
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching users"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Users fetched successfully!", gin.H{"users": users}))
}

// GetUserDetails returns one customer with their order count and the
// size of their cart and wishlist.
func (h *AdminHandler) GetUserDetails(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid user id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "User not found"))
		return
	}

	orderCount, err := h.DB.Collection("orders").CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching user details"))
		return
	}

	var cart models.Cart
	cartItems := 0
	if err := h.DB.Collection("carts").FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err == nil {
		cartItems = len(cart.Items)
	}

	var wishlist models.Wishlist
	wishlistItems := 0
	if err := h.DB.Collection("wishlists").FindOne(ctx, bson.M{"user": userID}).Decode(&wishlist); err == nil {
		wishlistItems = len(wishlist.Items)
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "User details fetched successfully!", gin.H{
		"user":          user,
		"orderCount":    orderCount,
		"cartItems":     cartItems,
		"wishlistItems": wishlistItems,
	}))
}
