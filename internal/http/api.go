package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"jobly/internal/auth"
	"jobly/internal/ratelimit"
	"jobly/internal/service"
)

// Options carries the dependencies of Handler. Limiter is optional.
type Options struct {
	Companies    service.CompanyService
	Jobs         service.JobService
	Users        service.UserService
	Applications service.ApplicationService
	Tokens       *auth.TokenIssuer
	Limiter      ratelimit.Limiter
	Logger       *logrus.Logger
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	companies    service.CompanyService
	jobs         service.JobService
	users        service.UserService
	applications service.ApplicationService
	tokens       *auth.TokenIssuer
	limiter      ratelimit.Limiter
	logger       *logrus.Logger
}

func NewHandler(opts Options) *Handler {
	registerValidators()

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Handler{
		companies:    opts.Companies,
		jobs:         opts.Jobs,
		users:        opts.Users,
		applications: opts.Applications,
		tokens:       opts.Tokens,
		limiter:      opts.Limiter,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger())
	router.Use(corsMiddleware())
	if h.limiter != nil {
		router.Use(h.rateLimit())
	}
	router.Use(h.authenticate())

	router.NoRoute(func(c *gin.Context) {
		writeErrorStatus(c, http.StatusNotFound, "Not Found")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/token", h.token)
		authGroup.POST("/register", h.register)
	}

	companies := router.Group("/companies")
	{
		companies.POST("", EnsureAdmin(), h.createCompany)
		companies.GET("", h.listCompanies)
		companies.GET("/:handle", h.getCompany)
		companies.PATCH("/:handle", EnsureAdmin(), h.updateCompany)
		companies.DELETE("/:handle", EnsureAdmin(), h.deleteCompany)
		companies.PUT("/:handle/logo", EnsureAdmin(), h.uploadCompanyLogo)
	}

	jobs := router.Group("/jobs")
	{
		jobs.POST("", EnsureAdmin(), h.createJob)
		jobs.GET("", h.listJobs)
		jobs.GET("/:id", h.getJob)
		jobs.PATCH("/:id", EnsureAdmin(), h.updateJob)
		jobs.DELETE("/:id", EnsureAdmin(), h.deleteJob)
	}

	users := router.Group("/users")
	{
		users.POST("", EnsureAdmin(), h.createUser)
		users.GET("", EnsureAdmin(), h.listUsers)
		users.GET("/:username", EnsureAdminOrSelf("username"), h.getUser)
		users.PATCH("/:username", EnsureAdminOrSelf("username"), h.updateUser)
		users.DELETE("/:username", EnsureAdminOrSelf("username"), h.deleteUser)
		users.POST("/:username/jobs/:id", EnsureAdminOrSelf("username"), h.applyForJob)
		users.PATCH("/:username/jobs/:id", EnsureAdminOrSelf("username"), h.updateApplicationStatus)
	}

	router.GET("/applications/:username", EnsureAdminOrSelf("username"), h.listApplications)
}

func corsMiddleware() gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization"}
	config.ExposeHeaders = []string{requestIDHeader}
	return cors.New(config)
}
