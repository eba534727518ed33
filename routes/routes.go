package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barberflow-backend/config"
	"barberflow-backend/controllers"
	"barberflow-backend/metrics"
	"barberflow-backend/middleware"
	"barberflow-backend/models"
	"barberflow-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AllowedOrigins is the CORS allow-list.
var AllowedOrigins = []string{
	"http://localhost:3000",
	"https://app.barberflow.com.br",
}

type Deps struct {
	Services   *services.Services
	Logger     *zap.Logger
	JWTSecret  []byte
	LoginLimit *middleware.RateLimiter
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestID())
	r.Use(config.PerformanceLogger(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	svc := deps.Services
	loginLimit := deps.LoginLimit
	if loginLimit == nil {
		loginLimit = middleware.NewRateLimiter(1, 5)
	}

	requireUser := middleware.RequireUser(deps.JWTSecret, deps.Logger, svc.Users.Exists)
	requireClient := middleware.RequireClient(deps.JWTSecret, deps.Logger, func(ctx context.Context, id uint) (bool, error) {
		_, err := svc.Clients.Get(ctx, id)
		if errors.Is(err, services.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	})
	can := func(names ...models.PermissionName) gin.HandlerFunc {
		return middleware.RequirePermissions(svc.Permissions, names...)
	}
	company := middleware.RequireCompanyAccess(svc.Companies)

	api := r.Group("/api")

	authController := controllers.NewAuthController(svc)
	auth := api.Group("/auth")
	{
		auth.POST("/register", loginLimit.Handler(), authController.Register)
		auth.POST("/login", loginLimit.Handler(), authController.Login)
		auth.GET("/me", requireUser, authController.Me)
	}

	userController := controllers.NewUserController(svc)
	users := api.Group("/user", requireUser)
	{
		users.POST("", can(models.PermManageMembers), userController.Create)
		users.GET("", can(models.PermViewMembers), company, userController.List)
		users.GET("/:id", can(), userController.Get)
		users.PUT("/:id", can(), userController.Update)
		users.DELETE("/:id", can(models.PermManageMembers), userController.Delete)
	}

	permissionController := controllers.NewPermissionController(svc)
	permissions := api.Group("/permission", requireUser)
	{
		permissions.GET("/me", permissionController.Me)
		managed := permissions.Group("", can(models.PermManagePermissions))
		managed.GET("/:userId", permissionController.Get)
		managed.POST("/:userId", permissionController.Assign)
		managed.PATCH("/:userId", permissionController.Update)
		managed.DELETE("/:userId", permissionController.Delete)
	}

	companyController := controllers.NewCompanyController(svc)
	api.GET("/company/slug/:slug", companyController.GetBySlug)
	companies := api.Group("/company", requireUser)
	{
		companies.POST("", companyController.Create)
		companies.GET("", companyController.List)
		companies.GET("/:companyId", company, companyController.Get)
		companies.PUT("/:companyId", can(models.PermManageCompany), company, companyController.Update)
		companies.DELETE("/:companyId", company, companyController.Delete)
		companies.GET("/:companyId/members", can(models.PermViewMembers), company, companyController.Members)
		companies.POST("/:companyId/members", can(models.PermManageMembers), company, companyController.AddMember)
		companies.DELETE("/:companyId/members/:userId", can(models.PermManageMembers), company, companyController.RemoveMember)
	}

	settingsController := controllers.NewSettingsController(svc)
	settings := api.Group("/company-settings", requireUser)
	{
		settings.GET("/:companyId", company, settingsController.Get)
		settings.PUT("/:companyId", can(models.PermManageSettings), company, settingsController.Update)
		settings.PUT("/:companyId/working-hours", can(models.PermManageSettings), company, settingsController.UpdateWorkingHours)
	}

	serviceController := controllers.NewServiceController(svc)
	catalog := api.Group("/service", requireUser)
	{
		catalog.POST("", can(models.PermManageServices), serviceController.Create)
		catalog.GET("", can(models.PermViewServices), company, serviceController.List)
		catalog.GET("/:id", can(models.PermViewServices), serviceController.Get)
		catalog.PUT("/:id", can(models.PermManageServices), serviceController.Update)
		catalog.DELETE("/:id", can(models.PermManageServices), serviceController.Delete)
	}

	productController := controllers.NewProductController(svc)
	products := api.Group("/product", requireUser)
	{
		products.POST("", can(models.PermManageProducts), productController.Create)
		products.GET("", can(models.PermViewProducts), company, productController.List)
		products.GET("/:id", can(models.PermViewProducts), productController.Get)
		products.PUT("/:id", can(models.PermManageProducts), productController.Update)
		products.PATCH("/:id/stock", can(models.PermManageProducts), productController.UpdateStock)
		products.DELETE("/:id", can(models.PermManageProducts), productController.Delete)
	}

	appointmentController := controllers.NewAppointmentController(svc)
	appointments := api.Group("/appointment", requireUser)
	{
		appointments.POST("", can(models.PermManageAppointments), appointmentController.Create)
		appointments.GET("", can(models.PermViewOwnAppointments), company, appointmentController.List)
		appointments.GET("/pending", can(models.PermViewOwnAppointments), company, appointmentController.Pending)
		appointments.GET("/:id", can(models.PermViewOwnAppointments), appointmentController.Get)
		appointments.PUT("/:id", can(models.PermManageAppointments), appointmentController.Update)
		appointments.PATCH("/:id/status", can(models.PermManageAppointments), appointmentController.UpdateStatus)
		appointments.DELETE("/:id", can(models.PermManageAppointments), appointmentController.Delete)
	}

	clientController := controllers.NewClientController(svc)
	clients := api.Group("/client")
	{
		clients.POST("/auth/register", loginLimit.Handler(), clientController.Register)
		clients.POST("/auth/login", loginLimit.Handler(), clientController.Login)

		portal := clients.Group("/portal", requireClient)
		portal.GET("/me", clientController.PortalMe)
		portal.GET("/appointments", clientController.PortalAppointments)
		portal.POST("/appointments", clientController.PortalBook)

		staff := clients.Group("", requireUser)
		staff.POST("", can(models.PermManageClients), clientController.Create)
		staff.GET("", can(models.PermViewOwnClients), company, clientController.List)
		staff.GET("/:id", can(models.PermViewOwnClients), clientController.Get)
		staff.PUT("/:id", can(models.PermManageClients), clientController.Update)
		staff.DELETE("/:id", can(models.PermManageClients), clientController.Delete)
	}

	commissionController := controllers.NewCommissionController(svc)
	commissions := api.Group("/commission", requireUser)
	{
		commissions.GET("/config", can(models.PermViewOwnCommissions), company, commissionController.GetConfig)
		commissions.POST("/config", can(models.PermManageCommissions), commissionController.CreateConfig)
		commissions.PUT("/rules/:id", can(models.PermManageCommissions), commissionController.UpdateRule)
		commissions.GET("/report", can(models.PermViewOwnCommissions), company, commissionController.Report)
	}

	goalController := controllers.NewGoalController(svc)
	goals := api.Group("/goal", requireUser)
	{
		goals.GET("", can(models.PermViewOwnGoals), company, goalController.List)
		goals.GET("/progress", can(models.PermViewOwnGoals), company, goalController.Progress)
		goals.PUT("/:id", can(models.PermManageGoals), goalController.Update)
	}

	reportController := controllers.NewReportController(svc)
	revenue := api.Group("/revenue", requireUser)
	{
		revenue.GET("", can(models.PermViewOwnRevenue), company, reportController.Revenue)
		revenue.GET("/by-staff", can(models.PermViewFullRevenue), company, reportController.RevenueByStaff)
		revenue.GET("/top-services", can(models.PermViewOwnRevenue), company, reportController.TopServices)
	}

	statisticsController := controllers.NewStatisticsController(svc)
	statistics := api.Group("/statistics", requireUser)
	{
		statistics.GET("/products-sold", can(models.PermViewOwnStatistics), company, statisticsController.ProductsSold)
		statistics.GET("/pending-appointments", can(models.PermViewOwnStatistics), company, statisticsController.PendingAppointments)
		statistics.GET("/overview", can(models.PermViewOwnStatistics), company, statisticsController.Overview)
	}

	return r
}
