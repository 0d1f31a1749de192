package router

import (
	"github.com/gin-gonic/gin"

	"github.com/aionlab/aion-backend/config"
	"github.com/aionlab/aion-backend/internal/app/controller"
	"github.com/aionlab/aion-backend/internal/middleware"
)

type Router struct {
	authController         *controller.AuthController
	contentController      *controller.ContentController
	perfumeController      *controller.PerfumeController
	brandController        *controller.BrandController
	cartController         *controller.CartController
	orderController        *controller.OrderController
	wishlistController     *controller.WishlistController
	couponController       *controller.CouponController
	eventController        *controller.EventController
	announcementController *controller.AnnouncementController
	inquiryController      *controller.InquiryController
	pointController        *controller.PointController
	uploadController       *controller.UploadController
	wsController           *controller.WSController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	contentController *controller.ContentController,
	perfumeController *controller.PerfumeController,
	brandController *controller.BrandController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	wishlistController *controller.WishlistController,
	couponController *controller.CouponController,
	eventController *controller.EventController,
	announcementController *controller.AnnouncementController,
	inquiryController *controller.InquiryController,
	pointController *controller.PointController,
	uploadController *controller.UploadController,
	wsController *controller.WSController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		contentController:      contentController,
		perfumeController:      perfumeController,
		brandController:        brandController,
		cartController:         cartController,
		orderController:        orderController,
		wishlistController:     wishlistController,
		couponController:       couponController,
		eventController:        eventController,
		announcementController: announcementController,
		inquiryController:      inquiryController,
		pointController:        pointController,
		uploadController:       uploadController,
		wsController:           wsController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "AION API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/reset-password", r.authController.ResetPassword)

			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetProfile)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
			auth.DELETE("/me", r.authMiddleware.Authenticate(), r.authController.DeleteAccount)
			auth.GET("/login-history", r.authMiddleware.Authenticate(), r.authController.GetLoginHistory)
		}

		// 공개 스토어프런트: 활성 콘텐츠 조회
		v1.GET("/content/:type/active", r.contentController.GetActiveContent)

		perfumes := v1.Group("/perfumes")
		{
			perfumes.GET("", r.authMiddleware.OptionalAuthenticate(), r.perfumeController.ListPerfumes)
			perfumes.GET("/search", r.perfumeController.SearchPerfumes)
			perfumes.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.perfumeController.GetPerfume)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", r.brandController.ListBrands)
			brands.GET("/:id", r.brandController.GetBrand)
		}

		events := v1.Group("/events")
		{
			events.GET("", r.authMiddleware.OptionalAuthenticate(), r.eventController.ListEvents)
			events.GET("/:id", r.eventController.GetEvent)
			events.POST("/:id/join", r.authMiddleware.Authenticate(), r.eventController.JoinEvent)
		}

		announcements := v1.Group("/announcements")
		{
			announcements.GET("", r.announcementController.ListAnnouncements)
			announcements.GET("/:id", r.announcementController.GetAnnouncement)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetMyOrders)
			orders.GET("/:id", r.orderController.GetOrder)
			orders.POST("", r.orderController.CreateOrder)
			orders.POST("/:id/cancel", r.orderController.CancelOrder)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("/:perfumeId/toggle", r.wishlistController.ToggleWishlist)
		}

		coupons := v1.Group("/coupons")
		coupons.Use(r.authMiddleware.Authenticate())
		{
			coupons.POST("/claim", r.couponController.ClaimCoupon)
			coupons.GET("/me", r.couponController.GetMyCoupons)
		}

		points := v1.Group("/points")
		points.Use(r.authMiddleware.Authenticate())
		{
			points.GET("/balance", r.pointController.GetBalance)
			points.GET("/history", r.pointController.GetHistory)
			points.POST("/spend", r.pointController.SpendPoints)
		}

		inquiries := v1.Group("/inquiries")
		inquiries.Use(r.authMiddleware.Authenticate())
		{
			inquiries.POST("", r.inquiryController.CreateInquiry)
			inquiries.GET("", r.inquiryController.GetMyInquiries)
			inquiries.GET("/:id", r.inquiryController.GetInquiry)
			inquiries.DELETE("/:id", r.inquiryController.DeleteInquiry)
		}

		// 콘텐츠 회전 실시간 피드 (익명 허용)
		v1.GET("/ws/content", r.wsController.ContentFeed)

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			content := admin.Group("/content")
			{
				content.GET("/versions/:id", r.contentController.GetVersion)
				content.PUT("/versions/:id", r.contentController.UpdateVersion)
				content.DELETE("/versions/:id", r.contentController.DeleteVersion)

				content.GET("/:type", r.contentController.ListHistory)
				content.POST("/:type", r.contentController.PublishVersion)
				content.PUT("/:type/:id/activate", r.contentController.ActivateVersion)
			}

			perfumes := admin.Group("/perfumes")
			{
				perfumes.POST("", r.perfumeController.CreatePerfume)
				perfumes.PUT("/:id", r.perfumeController.UpdatePerfume)
				perfumes.DELETE("/:id", r.perfumeController.DeletePerfume)
			}

			brands := admin.Group("/brands")
			{
				brands.POST("", r.brandController.CreateBrand)
				brands.PUT("/:id", r.brandController.UpdateBrand)
				brands.DELETE("/:id", r.brandController.DeleteBrand)
			}

			coupons := admin.Group("/coupons")
			{
				coupons.GET("", r.couponController.ListCoupons)
				coupons.POST("", r.couponController.CreateCoupon)
				coupons.PUT("/:id", r.couponController.UpdateCoupon)
				coupons.DELETE("/:id", r.couponController.DeleteCoupon)
			}

			events := admin.Group("/events")
			{
				events.POST("", r.eventController.CreateEvent)
				events.PUT("/:id", r.eventController.UpdateEvent)
				events.DELETE("/:id", r.eventController.DeleteEvent)
			}

			announcements := admin.Group("/announcements")
			{
				announcements.POST("", r.announcementController.CreateAnnouncement)
				announcements.PUT("/:id", r.announcementController.UpdateAnnouncement)
				announcements.DELETE("/:id", r.announcementController.DeleteAnnouncement)
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", r.orderController.ListAllOrders)
				orders.PUT("/:id/status", r.orderController.UpdateOrderStatus)
				orders.PUT("/:id/payment", r.orderController.UpdatePaymentStatus)
			}

			inquiries := admin.Group("/inquiries")
			{
				inquiries.GET("", r.inquiryController.ListAllInquiries)
				inquiries.PUT("/:id/answer", r.inquiryController.AnswerInquiry)
			}

			points := admin.Group("/points")
			{
				points.GET("/rules", r.pointController.ListRules)
				points.PUT("/rules/:action", r.pointController.UpdateRule)
			}

			upload := admin.Group("/upload")
			{
				upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
