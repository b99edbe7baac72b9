// Package httpapi exposes the REST surface of the server: public
// registration and token endpoints, the authenticated user/question
// operations, and the admin area.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/englishhq/internal/logging"
	"github.com/dmitrijs2005/englishhq/internal/server/models"
	"github.com/dmitrijs2005/englishhq/internal/server/repositories/apikeys"
)

// UserProvider is the slice of the user service the handlers need.
type UserProvider interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id int64, active bool) (*models.User, error)
	Recharge(ctx context.Context, userID int64, amount float64, description string) (float64, error)
}

// QuestionProvider answers questions and serves the per-user archive.
type QuestionProvider interface {
	Ask(ctx context.Context, user *models.User, question string) (*models.QuestionRecord, error)
	History(ctx context.Context, userID int64) ([]models.QuestionRecord, error)
	Record(ctx context.Context, id, userID int64) (*models.QuestionRecord, error)
}

// APIKeyProvider is the admin credential store.
type APIKeyProvider interface {
	Create(ctx context.Context, key *models.APIKey) (*models.APIKey, error)
	List(ctx context.Context) ([]models.APIKey, error)
	Get(ctx context.Context, id int64) (*models.APIKey, error)
	Update(ctx context.Context, id int64, upd apikeys.Update) (*models.APIKey, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	users     UserProvider
	questions QuestionProvider
	apiKeys   APIKeyProvider
	jwtSecret []byte
	log       logging.Logger
}

func NewHandler(users UserProvider, questions QuestionProvider, apiKeys APIKeyProvider, jwtSecret []byte, log logging.Logger) *Handler {
	return &Handler{
		users:     users,
		questions: questions,
		apiKeys:   apiKeys,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// Router builds the chi mux with the full REST surface.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Welcome to English High Q API"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", h.register)
		r.Post("/users/token", h.token)

		r.Group(func(r chi.Router) {
			r.Use(h.bearerAuth)

			r.Get("/users/me", h.me)
			r.Post("/users/recharge", h.recharge)

			r.Post("/questions/ask", h.ask)
			r.Get("/questions/history", h.history)
			r.Get("/questions/record/{recordID}", h.record)

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.adminOnly)

				r.Post("/api-keys", h.createAPIKey)
				r.Get("/api-keys", h.listAPIKeys)
				r.Get("/api-keys/{keyID}", h.getAPIKey)
				r.Put("/api-keys/{keyID}", h.updateAPIKey)
				r.Delete("/api-keys/{keyID}", h.deleteAPIKey)

				r.Get("/users", h.listUsers)
				r.Get("/users/{userID}", h.getUser)
				r.Put("/users/{userID}/activate", h.activateUser)
				r.Put("/users/{userID}/deactivate", h.deactivateUser)
			})
		})
	})

	return r
}
