package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/mercato-dev/roster-manager/backend/internal/config"
	"github.com/mercato-dev/roster-manager/backend/internal/domain"
	"github.com/mercato-dev/roster-manager/backend/internal/repository"
	"github.com/mercato-dev/roster-manager/backend/internal/roster"
)

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	repository        *repository.Repository
	translator        ut.Translator
	notifyChannel     *amqp.Channel
	redisClient       *redis.Client
	generator         *roster.Generator
	parser            *roster.Parser
	canonicalTemplate []domain.ShiftTemplate

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		repository:        repo,
		translator:        trans,
		notifyChannel:     notifyCh,
		redisClient:       rdb,
		generator:         roster.NewGenerator(),
		parser:            roster.NewParser(cfg.Environment == "development"),
		canonicalTemplate: roster.DefaultTemplates(roster.TimeConvention(cfg.Roster.TimeConvention)),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// autenticación
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// todo lo demás requiere sesión
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCoordinator})).Post("/", h.CreateEmployee)
			r.Get("/", h.GetAllEmployees)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCoordinator})).Patch("/", h.UpdateEmployee)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCoordinator})).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/schedules", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCoordinator})).Post("/generate", h.GenerateSchedule)
			r.Get("/", h.GetAllSchedules)
			r.Get("/default-templates", h.GetDefaultTemplates)
			r.Post("/import/validate", h.ValidateImport)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.schedule)
				r.Get("/", h.GetSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCoordinator})).Patch("/", h.UpdateSchedule)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdministrator})).Delete("/", h.DeleteSchedule)
				r.Group(func(r chi.Router) {
					r.Use(h.RequiredRole([]domain.Role{domain.RoleAdministrator, domain.RoleCoordinator}))
					r.Post("/shifts/{shiftID}/toggle", h.ToggleShift)
					r.Post("/shifts/{shiftID}/coverage", h.AssignShiftCoverage)
					r.Post("/import", h.ImportSchedule)
				})
				r.Get("/export", h.ExportScheduleCSV)
				r.Get("/export/xlsx", h.ExportScheduleXLSX)
			})
		})
	})
}
