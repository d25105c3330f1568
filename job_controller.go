package careers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// JobController serves the public job board and the authenticated posting
// lifecycle.
type JobController struct {
	Store      *TenantStore
	Responder  ErrorResponder
	ContextKey string
}

// Index is the public, published-only listing with the optional filter set.
func (ctl *JobController) Index(c *fiber.Ctx) error {
	filter := JobFilter{
		Search:     c.Query("search"),
		Location:   c.Query("location"),
		JobType:    c.Query("jobType"),
		Department: c.Query("department"),
	}

	records, err := ctl.Store.PublishedJobs(c.Context(), c.Params("slug"), filter)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"jobs": records})
}

// IndexAll includes drafts and is ownership guarded.
func (ctl *JobController) IndexAll(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	records, err := ctl.Store.AllJobs(c.Context(), actorCompany, c.Params("slug"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"jobs": records})
}

// Show resolves one published posting by its per-company slug.
func (ctl *JobController) Show(c *fiber.Ctx) error {
	job, err := ctl.Store.PublishedJob(c.Context(), c.Params("slug"), c.Params("jobSlug"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

// CreateJobRequest payload
type CreateJobRequest struct {
	JobInput
}

func (r CreateJobRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r.JobInput,
			validation.Field(&r.JobInput.Title, validation.Required),
			validation.Field(&r.JobInput.Description, validation.Required),
		)
	}, "Invalid job payload")
}

func (ctl *JobController) Create(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := CreateJobRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return ctl.Responder.Respond(c, err)
	}

	job, err := ctl.Store.CreateJob(c.Context(), actorCompany, c.Params("slug"), payload.JobInput)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (ctl *JobController) Update(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	jobID, err := parseResourceID(c.Params("id"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := JobUpdate{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	job, err := ctl.Store.UpdateJob(c.Context(), actorCompany, c.Params("slug"), jobID, payload)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

// PublishRequest payload
type PublishRequest struct {
	IsPublished *bool `json:"isPublished"`
}

// Publish toggles draft/live. Both directions are always allowed.
func (ctl *JobController) Publish(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	jobID, err := parseResourceID(c.Params("id"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := PublishRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}
	if payload.IsPublished == nil {
		return ctl.Responder.Respond(c, goerrors.New("isPublished is required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest))
	}

	job, err := ctl.Store.SetJobPublished(c.Context(), actorCompany, c.Params("slug"), jobID, *payload.IsPublished)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"job": job})
}

func (ctl *JobController) Delete(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	jobID, err := parseResourceID(c.Params("id"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	if err := ctl.Store.DeleteJob(c.Context(), actorCompany, c.Params("slug"), jobID); err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}

// parseResourceID rejects non-uuid path ids before storage sees them. An
// unparsable id can never match a row, so the outcome mirrors the guard's
// uniform refusal.
func parseResourceID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNotAuthorized
	}
	return id, nil
}
