package routes

import (
	"net/http"

	"github.com/canvascartel/crm-backend/internal/handlers"
	"github.com/canvascartel/crm-backend/internal/mailer"
	"github.com/canvascartel/crm-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries everything the handlers need. Redis may be nil; caching is
// then skipped.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Mailer *mailer.Mailer
}

// NewRouter wires the full API surface and starts the activity feed hub.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	hub := handlers.NewFeedHub()
	go hub.Run()
	recorder := handlers.NewActivityRecorder(deps.DB, hub)

	leadH := handlers.NewLeadHandler(deps.DB, recorder)
	contactH := handlers.NewContactHandler(deps.DB, recorder)
	dealH := handlers.NewDealHandler(deps.DB, recorder)
	callLogH := handlers.NewCallLogHandler(deps.DB, recorder)
	taskH := handlers.NewTaskHandler(deps.DB)
	expenseH := handlers.NewExpenseHandler(deps.DB, recorder)
	serviceH := handlers.NewServiceHandler(deps.DB)
	webhookH := handlers.NewWebhookHandler(deps.DB, recorder)
	invoiceH := handlers.NewInvoiceHandler(deps.DB, recorder, deps.Mailer)
	itemH := handlers.NewInvoiceItemHandler(deps.DB)
	paymentH := handlers.NewPaymentHandler(deps.DB, recorder)
	settingsH := handlers.NewSettingsHandler(deps.DB, deps.Redis)
	activityH := handlers.NewActivityHandler(deps.DB, hub)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		leads := api.Group("/leads")
		{
			leads.GET("", leadH.List)
			leads.POST("", leadH.Create)
			leads.GET("/:id", leadH.Get)
			leads.PATCH("/:id", leadH.Update)
			leads.DELETE("/:id", leadH.Delete)
			leads.POST("/:id/send-to-n8n", leadH.SendToN8N)
			leads.GET("/:id/call-logs", callLogH.ListByLead)
		}

		contacts := api.Group("/contacts")
		{
			contacts.GET("", contactH.List)
			contacts.POST("", contactH.Create)
			contacts.GET("/:id", contactH.Get)
			contacts.PATCH("/:id", contactH.Update)
			contacts.DELETE("/:id", contactH.Delete)
		}

		deals := api.Group("/deals")
		{
			deals.GET("", dealH.List)
			deals.POST("", dealH.Create)
			deals.GET("/:id", dealH.Get)
			deals.PATCH("/:id", dealH.Update)
			deals.DELETE("/:id", dealH.Delete)
		}

		callLogs := api.Group("/call-logs")
		{
			callLogs.GET("", callLogH.List)
			callLogs.POST("", callLogH.Create)
			callLogs.PATCH("/:id", callLogH.Update)
			callLogs.DELETE("/:id", callLogH.Delete)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskH.List)
			tasks.POST("", taskH.Create)
			tasks.GET("/:id", taskH.Get)
			tasks.PATCH("/:id", taskH.Update)
			tasks.DELETE("/:id", taskH.Delete)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", expenseH.List)
			expenses.POST("", expenseH.Create)
			expenses.PATCH("/:id", expenseH.Update)
			expenses.DELETE("/:id", expenseH.Delete)
		}

		services := api.Group("/services")
		{
			services.GET("", serviceH.List)
			services.POST("", serviceH.Create)
			services.PATCH("/:id", serviceH.Update)
			services.DELETE("/:id", serviceH.Delete)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", invoiceH.List)
			invoices.POST("", invoiceH.Create)
			invoices.GET("/export", invoiceH.Export)
			invoices.GET("/:id", invoiceH.Get)
			invoices.PATCH("/:id", invoiceH.Update)
			invoices.DELETE("/:id", invoiceH.Delete)
			invoices.POST("/:id/send-email", invoiceH.SendEmail)
		}

		items := api.Group("/invoice-items")
		{
			items.POST("", itemH.Create)
			items.DELETE("/:id", itemH.Delete)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentH.List)
			payments.GET("/invoice/:invoiceId", paymentH.ListByInvoice)
			payments.POST("", paymentH.Create)
			payments.PATCH("/:id", paymentH.Update)
			payments.DELETE("/:id", paymentH.Delete)
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.GET("", webhookH.List)
			webhooks.POST("", webhookH.Create)
			webhooks.PATCH("/:id", webhookH.Update)
			webhooks.DELETE("/:id", webhookH.Delete)
		}
		api.POST("/webhook/n8n/:webhookId", webhookH.N8NIntake)

		settings := api.Group("/settings")
		{
			settings.GET("", settingsH.GetMap)
			settings.POST("", settingsH.Upsert)
		}

		activities := api.Group("/activities")
		{
			activities.GET("", activityH.List)
			activities.GET("/ws", activityH.Stream)
		}
	}

	return r
}
