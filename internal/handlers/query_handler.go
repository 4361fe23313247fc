package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type QueryHandler struct {
	DB     *mongo.Database
	Mailer utils.Mailer
}

func NewQueryHandler(db *mongo.Database, mailer utils.Mailer) *QueryHandler {
	return &QueryHandler{DB: db, Mailer: mailer}
}

func (h *QueryHandler) queries() *mongo.Collection {
	return h.DB.Collection("queries")
}

// AddQuery records a customer support message. No authentication needed;
// the contact form is open to guests.
func (h *QueryHandler) AddQuery(c *gin.Context) {
	var input models.AddQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "All fields are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	query := models.Query{
		FullName:  input.FullName,
		Email:     input.Email,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	res, err := h.queries().InsertOne(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while submitting the query"))
		return
	}
	query.ID = res.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Query submitted successfully!", gin.H{"query": query}))
}

func (h *QueryHandler) GetAllQueries(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.queries().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching queries"))
		return
	}
	defer cursor.Close(ctx)

	queries := []models.Query{}
	if err := cursor.All(ctx, &queries); err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching queries"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Queries fetched successfully!", gin.H{"queries": queries}))
}

// ReplyQuery stores the admin's answer and mails it to the customer. The
// reply is persisted first; a failed send does not fail the request.
func (h *QueryHandler) ReplyQuery(c *gin.Context) {
	queryID, err := primitive.ObjectIDFromHex(c.Param("queryId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid query id"))
		return
	}

	var input models.ReplyQueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Reply message is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"reply": input.Reply, "updatedAt": time.Now()}}

	var query models.Query
	if err := h.queries().FindOneAndUpdate(ctx, bson.M{"_id": queryID}, update, opts).Decode(&query); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Query not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while replying to the query"))
		return
	}

	html := fmt.Sprintf(`
	<h2>Re: %s</h2>
	<p>Hi %s,</p>
	<p>%s</p>
	<br/>
	<p>Clothique Support</p>
	`, query.Subject, query.FullName, input.Reply)

	result := h.Mailer.Send(utils.Mail{
		To:      query.Email,
		Subject: "Re: " + query.Subject,
		HTML:    html,
	})
	if !result.Success {
		logrus.WithField("queryId", query.ID.Hex()).Warn("Failed to send query reply email")
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Reply sent successfully!", gin.H{"query": query}))
}
