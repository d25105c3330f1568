package careers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirepage/careers/middleware/authware"
)

// APIVersion reported by the health endpoint.
const APIVersion = "1.0.0"

// RouterConfig carries everything RegisterRoutes needs to mount the API.
type RouterConfig struct {
	Auther     *Auther
	Store      *TenantStore
	Tokens     TokenService
	Uploader   *Uploader
	Logger     Logger
	ContextKey string
	Production bool
}

// tokenValidator adapts the token service to the middleware's mirrored
// validator interface.
type tokenValidator struct {
	tokens TokenService
}

func (v tokenValidator) Validate(raw string) (authware.AuthClaims, error) {
	claims, err := v.tokens.Validate(raw)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RegisterRoutes mounts the public and authenticated endpoints on app.
// Protected routes sit behind the bearer-token middleware; everything a
// visitor needs to render a careers page stays public.
func RegisterRoutes(app *fiber.App, cfg RouterConfig) {
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.Logger == nil {
		cfg.Logger = defLogger{}
	}

	responder := ErrorResponder{Logger: cfg.Logger, Production: cfg.Production}

	protected := authware.New(authware.Config{
		TokenValidator: tokenValidator{tokens: cfg.Tokens},
		ContextKey:     cfg.ContextKey,
	})

	auth := &AuthController{Auther: cfg.Auther, Responder: responder, ContextKey: cfg.ContextKey}
	companies := &CompanyController{Store: cfg.Store, Uploader: cfg.Uploader, Responder: responder, ContextKey: cfg.ContextKey}
	jobs := &JobController{Store: cfg.Store, Responder: responder, ContextKey: cfg.ContextKey}
	sections := &SectionController{Store: cfg.Store, Responder: responder, ContextKey: cfg.ContextKey}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Careers Page Builder API",
			"status":  "running",
			"version": APIVersion,
		})
	})

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.RegisterPost)
	authGroup.Post("/login", auth.LoginPost)
	authGroup.Get("/me", protected, auth.MeShow)

	company := api.Group("/companies/:slug")
	company.Get("/", companies.Show)
	company.Put("/", protected, companies.Update)
	company.Get("/theme", companies.ThemeShow)
	company.Put("/theme", protected, companies.ThemeUpdate)
	company.Post("/upload", protected, companies.Upload)

	// "/all" before "/:jobSlug" so the literal segment wins
	company.Get("/jobs", jobs.Index)
	company.Get("/jobs/all", protected, jobs.IndexAll)
	company.Post("/jobs", protected, jobs.Create)
	company.Get("/jobs/:jobSlug", jobs.Show)
	company.Put("/jobs/:id", protected, jobs.Update)
	company.Patch("/jobs/:id/publish", protected, jobs.Publish)
	company.Delete("/jobs/:id", protected, jobs.Delete)

	// "/reorder" before "/:id" for the same reason
	company.Get("/sections", sections.Index)
	company.Post("/sections", protected, sections.Create)
	company.Put("/sections/reorder", protected, sections.Reorder)
	company.Put("/sections/:id", protected, sections.Update)
	company.Delete("/sections/:id", protected, sections.Delete)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Route not found"})
	})
}
