package careers

import (
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// CompanyController serves the public company profile and the authenticated
// company, theme, and upload mutations.
type CompanyController struct {
	Store      *TenantStore
	Uploader   *Uploader
	Responder  ErrorResponder
	ContextKey string
}

// Show is the public careers page profile: company plus theme, addressed by
// slug only.
func (ctl *CompanyController) Show(c *fiber.Ctx) error {
	company, err := ctl.Store.CompanyProfile(c.Context(), c.Params("slug"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"company": company})
}

// Update mutates name/description with keep-existing semantics for omitted
// fields.
func (ctl *CompanyController) Update(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := CompanyUpdate{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	company, err := ctl.Store.UpdateCompany(c.Context(), actorCompany, c.Params("slug"), payload)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"company": company})
}

// ThemeShow is public.
func (ctl *CompanyController) ThemeShow(c *fiber.Ctx) error {
	theme, err := ctl.Store.ThemeBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"theme": theme})
}

// ThemeUpdate mutates the theme in place; the row itself is created once at
// registration and never recreated.
func (ctl *CompanyController) ThemeUpdate(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	payload := ThemeUpdate{}
	if err := c.BodyParser(&payload); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	theme, err := ctl.Store.UpdateTheme(c.Context(), actorCompany, c.Params("slug"), payload)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}
	return c.JSON(fiber.Map{"theme": theme})
}

// Upload accepts a logo or banner image and returns its public URL. The
// handler only stores the file; persisting the URL into the theme is a
// separate ThemeUpdate call.
func (ctl *CompanyController) Upload(c *fiber.Ctx) error {
	actorCompany, err := ActorCompanyID(c, ctl.ContextKey)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	if _, err := ctl.Store.Guard().AuthorizeCompany(c.Context(), actorCompany, c.Params("slug")); err != nil {
		return ctl.Responder.Respond(c, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return ctl.Responder.Respond(c, goerrors.New("No file uploaded", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest))
	}

	filename, url, err := ctl.Uploader.Validate(file)
	if err != nil {
		return ctl.Responder.Respond(c, err)
	}

	if err := c.SaveFile(file, ctl.Uploader.Path(filename)); err != nil {
		return ctl.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryInternal, "Failed to upload file"))
	}

	return c.JSON(fiber.Map{
		"message":  "File uploaded successfully",
		"url":      url,
		"filename": filename,
	})
}
