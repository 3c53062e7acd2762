// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/blumenous/poetry-backend/internal/controller"
	"github.com/blumenous/poetry-backend/internal/db"
	"github.com/blumenous/poetry-backend/internal/mailer"
	"github.com/blumenous/poetry-backend/internal/middleware"
	"github.com/blumenous/poetry-backend/internal/queue"
	"github.com/blumenous/poetry-backend/internal/repository"
	"github.com/blumenous/poetry-backend/internal/service"
	"github.com/blumenous/poetry-backend/internal/util"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	// Init DB
	db.Init()

	poemRepo := &repository.PoemRepository{DB: db.DB}
	subscriberRepo := &repository.SubscriberRepository{DB: db.DB}
	emailLogRepo := &repository.EmailLogRepository{DB: db.DB}
	emailEventRepo := &repository.EmailEventRepository{DB: db.DB}
	commentRepo := &repository.CommentRepository{DB: db.DB}
	likeRepo := &repository.LikeRepository{DB: db.DB}

	// Suppression jobs go through RabbitMQ; without a broker the webhook
	// still ingests events, bounces just stay subscribed.
	var suppressionQueue queue.Queue
	if url := util.GetEnv("AMQP_URL", ""); url != "" {
		q, err := queue.NewAMQPQueue(url)
		if err != nil {
			log.Println("⚠️ Failed to connect to RabbitMQ, suppression disabled:", err)
		} else {
			suppressionQueue = q
			defer q.Close()
		}
	}

	newsletterService := &service.NewsletterService{
		PoemRepo:       poemRepo,
		SubscriberRepo: subscriberRepo,
		EmailLogRepo:   emailLogRepo,
		Sender:         mailer.Default(),
	}
	eventService := &service.EventService{
		EmailLogRepo:   emailLogRepo,
		EmailEventRepo: emailEventRepo,
		Queue:          suppressionQueue,
	}
	poemService := &service.PoemService{PoemRepo: poemRepo}
	subscriberService := &service.SubscriberService{SubscriberRepo: subscriberRepo}

	authController := &controller.AuthController{}
	poemController := &controller.PoemController{PoemService: poemService, PoemRepo: poemRepo}
	subscriberController := &controller.SubscriberController{SubscriberService: subscriberService}
	engagementController := &controller.EngagementController{
		PoemRepo:    poemRepo,
		CommentRepo: commentRepo,
		LikeRepo:    likeRepo,
	}
	newsletterController := &controller.NewsletterController{
		NewsletterService: newsletterService,
		EmailLogRepo:      emailLogRepo,
		EmailEventRepo:    emailEventRepo,
	}
	webhookController := &controller.WebhookController{EventService: eventService}

	r := chi.NewRouter()

	// Public reading routes
	r.Get("/api/poems", poemController.ListPoems)
	r.Get("/api/poems/search", poemController.SearchPoems)
	r.Get("/api/poems/tree", poemController.GetPoemTree)
	r.Get("/api/poems/{slug}", poemController.GetPoem)

	// Visitor engagement, rate limited per IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.CommentRate))
		r.Post("/api/poems/{slug}/comments", engagementController.AddComment)
	})
	r.Get("/api/poems/{slug}/comments", engagementController.ListComments)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.LikeRate))
		r.Post("/api/poems/{slug}/like", engagementController.ToggleLike)
	})
	r.Get("/api/poems/{slug}/like", engagementController.GetLikes)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.SubscriptionRate))
		r.Post("/api/subscribe", subscriberController.Subscribe)
	})
	r.Post("/api/unsubscribe", subscriberController.Unsubscribe)
	r.Get("/api/unsubscribe", subscriberController.UnsubscribeLink)

	// Provider webhook, authenticated by signature
	r.Post("/api/webhooks/email", webhookController.HandleEmailEvent)

	// Admin routes
	r.Post("/api/admin/login", authController.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminAuth)
		r.Get("/api/admin/poems", poemController.ListAllPoems)
		r.Post("/api/admin/poems", poemController.CreatePoem)
		r.Put("/api/admin/poems/{id}", poemController.UpdatePoem)
		r.Delete("/api/admin/poems/{id}", poemController.DeletePoem)
		r.Get("/api/admin/subscribers", subscriberController.ListSubscribers)
		r.Delete("/api/admin/subscribers/{id}", subscriberController.DeleteSubscriber)
		r.Delete("/api/admin/comments/{id}", engagementController.DeleteComment)
		r.Post("/api/admin/send-email", newsletterController.SendEmail)
		r.Get("/api/admin/email-logs", newsletterController.ListEmailLogs)
		r.Get("/api/admin/email-logs/{id}/events", newsletterController.ListEmailLogEvents)
	})

	addr := ":" + util.GetEnv("HTTP_PORT", "8080")
	log.Println("🚀 Server running on", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
