package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/ucin-dev/workload-tracker/backend/internal/config"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/repository"
	"github.com/ucin-dev/workload-tracker/backend/internal/timefmt"
	"github.com/ucin-dev/workload-tracker/backend/internal/utils"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	if err := validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		return timefmt.IsCanonical(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("patientref", func(fl validator.FieldLevel) bool {
		return utils.IsValidPatientReference(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a logged-in staff member
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/staff-members", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateStaffMember)
			r.Get("/", h.GetAllStaffMembers)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffMember)
				r.Get("/", h.GetStaffMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateStaffMember)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteStaffMember)
			})
		})

		r.Route("/patients", func(r chi.Router) {
			r.Get("/", h.GetAllPatients)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreatePatient)
			r.Get("/{reference}", h.ResolvePatient)
		})

		r.Get("/catalog", h.GetCatalog)

		r.Route("/shift-sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Post("/entries", h.AppendEntriesByShift)
			r.Get("/mine", h.GetMySessions)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftSession)
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/entries", h.AddEntries)
				r.Delete("/entries/{entryID}", h.RemoveEntry)
			})
		})

		r.Route("/categorizations", func(r chi.Router) {
			r.Post("/", h.CreateCategorization)
			r.Get("/patient/{reference}", h.GetPatientCategorizations)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.categorization)
				r.Get("/", h.GetCategorization)
				r.Patch("/", h.UpdateCategorization)
			})
		})

		r.Route("/burnout", func(r chi.Router) {
			r.Post("/", h.SubmitBurnoutInventory)
			r.Get("/mine", h.GetMyBurnoutSubmission)
		})

		r.Get("/metrics/overview", h.GetMetricsOverview)
	})
}
