package careers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// SectionController serves the public section listing and the authenticated
// content-block lifecycle, including reordering.
type SectionController struct {
	Store      *TenantStore
	Responder  ErrorResponder
	ContextKey string
}

// Index is public and returns the blocks in display order.
func (ctl *SectionController) Index(c *fiber.Ctx) error {
	records, err := ctl.Store.Sections(c.Context(), c.Params("slug"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"sections": records})
}

// CreateSectionRequest payload
type CreateSectionRequest struct {
	SectionInput
}

func (r CreateSectionRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r.SectionInput,
			validation.Field(&r.SectionInput.Title, validation.Required),
			validation.Field(&r.SectionInput.Content, validation.Required),
		)
	}, "Invalid section payload")
}

func (ctl *SectionController) Create(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := CreateSectionRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return ctl.Responder.Respond(c, err)
	}

	section, err := ctl.Store.CreateSection(c.Context(), actorCompany, c.Params("slug"), payload.SectionInput)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"section": section})
}

// ReorderRequest payload
type ReorderRequest struct {
	SectionIDs []uuid.UUID `json:"sectionIds"`
}

func (r ReorderRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.SectionIDs, validation.NotNil),
		)
	}, "sectionIds must be an array")
}

// Reorder assigns display positions following the supplied id order.
func (ctl *SectionController) Reorder(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := ReorderRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "sectionIds must be an array").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return ctl.Responder.Respond(c, err)
	}

	if err := ctl.Store.ReorderSections(c.Context(), actorCompany, c.Params("slug"), payload.SectionIDs); err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Sections reordered successfully"})
}

func (ctl *SectionController) Update(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	sectionID, err := parseResourceID(c.Params("id"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := SectionUpdate{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	section, err := ctl.Store.UpdateSection(c.Context(), actorCompany, c.Params("slug"), sectionID, payload)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"section": section})
}

func (ctl *SectionController) Delete(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	sectionID, err := parseResourceID(c.Params("id"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	if err := ctl.Store.DeleteSection(c.Context(), actorCompany, c.Params("slug"), sectionID); err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"message": "Section deleted successfully"})
}
