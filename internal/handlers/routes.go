package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/internal/middleware"
	"github.com/clothique/ecommerce-backend/utils"
)

// SetupRoutes wires every handler group under /api.
func SetupRoutes(router *gin.Engine, db *mongo.Database, mailer utils.Mailer) {
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	authHandler := NewAuthHandler(db, mailer)
	adminHandler := NewAdminHandler(db)
	categoryHandler := NewCategoryHandler(db)
	subCategoryHandler := NewSubCategoryHandler(db)
	productHandler := NewProductHandler(productRepo)
	filterHandler := NewFilterHandler(productRepo)
	cartHandler := NewCartHandler(cartRepo)
	wishlistHandler := NewWishlistHandler(wishlistRepo)
	reviewHandler := NewReviewHandler(reviewRepo)
	orderHandler := NewOrderHandler(orderRepo, mailer)
	paymentHandler := NewPaymentHandler(orderRepo)
	queryHandler := NewQueryHandler(db, mailer)

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh-token", authHandler.RefreshToken)
		users.POST("/send-otp", authHandler.SendOTP)
		users.POST("/check-otp", authHandler.CheckOTP)
		users.POST("/forgot-password", authHandler.ForgotPassword)

		users.POST("/logout", middleware.UserAuth(), authHandler.Logout)
		users.GET("/me", middleware.UserAuth(), authHandler.GetCurrentUser)
		users.GET("/check-auth", middleware.UserAuth(), authHandler.CheckAuthentication)
		users.PATCH("/update", middleware.UserAuth(), authHandler.UpdateProfile)
		users.PATCH("/change-password", middleware.UserAuth(), authHandler.ChangePassword)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/login", adminHandler.Login)

		admin.POST("/add", middleware.AdminAuth(), adminHandler.AddAdmin)
		admin.POST("/logout", middleware.AdminAuth(), adminHandler.Logout)
		admin.GET("/check-auth", middleware.AdminAuth(), adminHandler.CheckAuthentication)
		admin.GET("/details", middleware.AdminAuth(), adminHandler.GetAdminDetails)
		admin.PATCH("/update", middleware.AdminAuth(), adminHandler.UpdateAdmin)

		admin.GET("/users", middleware.AdminAuth(), adminHandler.GetAllUsers)
		admin.GET("/users/:userId", middleware.AdminAuth(), adminHandler.GetUserDetails)
	}

	category := api.Group("/category")
	{
		category.GET("/active", categoryHandler.GetActiveCategories)
		category.GET("/:categoryId", categoryHandler.GetCategoryByID)

		category.POST("/add", middleware.AdminAuth(), categoryHandler.AddCategory)
		category.GET("/all", middleware.AdminAuth(), categoryHandler.GetAllCategories)
		category.PATCH("/update/:categoryId", middleware.AdminAuth(), categoryHandler.UpdateCategory)
		category.PATCH("/toggle/:categoryId", middleware.AdminAuth(), categoryHandler.ToggleCategory)
		category.DELETE("/delete/:categoryId", middleware.AdminAuth(), categoryHandler.DeleteCategory)
	}

	subCategory := api.Group("/subcategory")
	{
		subCategory.GET("/by-category/:categoryId", subCategoryHandler.GetSubCategoriesByCategory)
		subCategory.GET("/:subCategoryId", subCategoryHandler.GetSubCategoryByID)

		subCategory.POST("/add", middleware.AdminAuth(), subCategoryHandler.AddSubCategory)
		subCategory.GET("/all", middleware.AdminAuth(), subCategoryHandler.GetAllSubCategories)
		subCategory.PATCH("/update/:subCategoryId", middleware.AdminAuth(), subCategoryHandler.UpdateSubCategory)
		subCategory.PATCH("/toggle/:subCategoryId", middleware.AdminAuth(), subCategoryHandler.ToggleSubCategory)
		subCategory.DELETE("/delete/:subCategoryId", middleware.AdminAuth(), subCategoryHandler.DeleteSubCategory)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:productId", productHandler.GetProductByID)
		products.GET("/category/:categoryId", productHandler.GetProductsByCategory)
		products.GET("/subcategory/:subCategoryId", productHandler.GetProductsBySubCategory)

		products.POST("/add", middleware.AdminAuth(), productHandler.AddProduct)
		products.GET("/admin/all", middleware.AdminAuth(), productHandler.GetAllProducts)
		products.GET("/admin/details/:productId", middleware.AdminAuth(), productHandler.GetProductDetails)
		products.PATCH("/update/:productId", middleware.AdminAuth(), productHandler.UpdateProduct)
		products.PATCH("/update-image/:productId", middleware.AdminAuth(), productHandler.UpdateProductImage)
		products.PATCH("/toggle/:productId", middleware.AdminAuth(), productHandler.ToggleProduct)
		products.DELETE("/delete/:productId", middleware.AdminAuth(), productHandler.DeleteProduct)
	}

	api.GET("/filters", filterHandler.GetFilters)

	cart := api.Group("/cart", middleware.UserAuth())
	{
		cart.POST("/add", cartHandler.AddToCart)
		cart.GET("", cartHandler.GetCart)
		cart.PATCH("/update/:itemId", cartHandler.UpdateCartItem)
		cart.DELETE("/remove/:itemId", cartHandler.RemoveFromCart)
		cart.DELETE("/clear", cartHandler.ClearCart)
	}

	wishlist := api.Group("/wishlist", middleware.UserAuth())
	{
		wishlist.POST("/add", wishlistHandler.AddToWishlist)
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.DELETE("/remove/:itemId", wishlistHandler.RemoveFromWishlist)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/product/:productId", reviewHandler.GetProductReviews)

		reviews.POST("/add/:productId", middleware.UserAuth(), reviewHandler.AddReview)
		reviews.DELETE("/delete/:reviewId", middleware.UserAuth(), reviewHandler.DeleteReview)

		reviews.GET("/all", middleware.AdminAuth(), reviewHandler.GetAllReviews)
	}

	orders := api.Group("/orders")
	{
		// Checkout is open to guests as well as logged in users.
		orders.POST("/create", orderHandler.CreateOrder)
		orders.GET("/details/:orderId", orderHandler.GetOrderDetails)

		orders.GET("/my-orders", middleware.UserAuth(), orderHandler.GetMyOrders)

		orders.GET("/user/:userId", middleware.AdminAuth(), orderHandler.GetUserOrders)
		orders.GET("/status/:status", middleware.AdminAuth(), orderHandler.GetOrdersByStatus)
		orders.PATCH("/update-status/:orderId", middleware.AdminAuth(), orderHandler.UpdateOrderStatus)
	}

	queries := api.Group("/queries")
	{
		queries.POST("/add", queryHandler.AddQuery)

		queries.GET("/all", middleware.AdminAuth(), queryHandler.GetAllQueries)
		queries.POST("/reply/:queryId", middleware.AdminAuth(), queryHandler.ReplyQuery)
	}

	payment := api.Group("/payment")
	{
		payment.POST("/create", paymentHandler.CreatePayment)
		payment.GET("/order/:orderId", paymentHandler.GetPaymentByOrder)
	}
}
