package handlers

import (
	"context"
	"fmt"
	"math/rand"
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

type AuthHandler struct {
	DB     *mongo.Database
	Mailer utils.Mailer
}

func NewAuthHandler(db *mongo.Database, mailer utils.Mailer) *AuthHandler {
	return &AuthHandler{DB: db, Mailer: mailer}
}

func (h *AuthHandler) users() *mongo.Collection {
	return h.DB.Collection("users")
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "All fields are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := h.users().FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"email": input.Email}, bson.M{"username": strings.ToLower(input.Username)}},
	}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, utils.ErrorResponse(http.StatusConflict, "Username or email already exists"))
		return
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while registering the user"))
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while registering the user"))
		return
	}

	user := models.User{
		Username:    strings.ToLower(input.Username),
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Country:     input.Country,
		Pincode:     input.Pincode,
		Password:    hashed,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	res, err := h.users().InsertOne(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while registering the user"))
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated,
		"User registered successfully! Please login to continue.", gin.H{"user": user}))
}

func (h *AuthHandler) Login(c *gin.Context) {
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

	var user models.User
	err := h.users().FindOne(ctx, bson.M{
		"$or": bson.A{bson.M{"email": input.Email}, bson.M{"username": strings.ToLower(input.Username)}},
	}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "User does not exist"))
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while logging in"))
		return
	}

	if !utils.CheckPassword(user.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid credentials"))
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while generating tokens"))
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex(), user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while generating tokens"))
		return
	}

	if _, err := h.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refreshToken": refreshToken, "updatedAt": time.Now()}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while logging in"))
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "User logged in successfully!", gin.H{
		"user":         user,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Not authorized to perform this action"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := h.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$unset": bson.M{"refreshToken": 1}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while logging out"))
		return
	}

	clearAuthCookies(c)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "User logged out successfully!", nil))
}

// RefreshToken rotates the session: the refresh token must match the one
// stored for the user, then a fresh pair is issued.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie("refreshToken")
	if err != nil || token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.RefreshToken == "" {
			c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Refresh token is required"))
			return
		}
		token = body.RefreshToken
	}

	claims, err := utils.VerifyRefreshToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid refresh token"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid refresh token"))
		return
	}
	if user.RefreshToken != token {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Refresh token is expired or used"))
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while generating tokens"))
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex(), user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while generating tokens"))
		return
	}

	if _, err := h.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refreshToken": refreshToken, "updatedAt": time.Now()}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while refreshing the session"))
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Session refreshed successfully!", gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	}))
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "User not found"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Current user fetched successfully!", gin.H{"user": user}))
}

func (h *AuthHandler) CheckAuthentication(c *gin.Context) {
	_, ok := currentUserID(c)
	c.JSON(http.StatusOK, gin.H{"authenticated": ok})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	var input models.UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid request body"))
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	for field, value := range map[string]string{
		"firstName":   input.FirstName,
		"lastName":    input.LastName,
		"email":       input.Email,
		"phoneNumber": input.PhoneNumber,
		"address":     input.Address,
		"city":        input.City,
		"state":       input.State,
		"country":     input.Country,
		"pincode":     input.Pincode,
	} {
		if value != "" {
			set[field] = value
		}
	}
	if len(set) == 1 {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Provide at least one field to update"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := h.users().FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": set}, opts).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "No user found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "User details updated successfully!", gin.H{"user": user}))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "You are not logged in!"))
		return
	}

	var input models.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Please provide both the old and new password"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "No user found"))
		return
	}

	if !utils.CheckPassword(user.Password, input.OldPassword) {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid password"))
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the password"))
		return
	}

	if _, err := h.users().UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now()}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while updating the password"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Password has been updated successfully.", nil))
}

// SendOTP mails a 4-digit code used by the forgot-password flow.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Please provide an email!"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid email address!"))
		return
	}

	otp := 1000 + rand.Intn(9000)
	if _, err := h.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"otp": otp, "updatedAt": time.Now()}}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while generating the OTP"))
		return
	}

	html := fmt.Sprintf(`
	<h2>Forgot Password</h2>
	<br/>
	<p>Your OTP for changing password: <span style="font-weight:bold;font-size:20px">%d</span></p>
	<br/>
	<p>Use the OTP to change your password.</p>
	`, otp)

	result := h.Mailer.Send(utils.Mail{
		To:      user.Email,
		Subject: "OTP for changing password",
		HTML:    html,
	})
	if !result.Success {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Failed to send email"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Email sent successfully!", nil))
}

func (h *AuthHandler) CheckOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		OTP   int    `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Please provide an email and an otp!"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"email": input.Email, "otp": input.OTP}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid email address or invalid otp"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "OTP validation successful", nil))
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Please provide new password to proceed."))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := h.users().FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid email address!"))
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while changing the password"))
		return
	}

	if _, err := h.users().UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$set":   bson.M{"password": hashed, "updatedAt": time.Now()},
			"$unset": bson.M{"otp": 1},
		}); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while changing the password"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Password has been changed successfully.", nil))
}
