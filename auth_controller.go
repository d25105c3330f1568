package careers

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// MinPasswordLength is enforced at registration only; login accepts whatever
// was registered.
const MinPasswordLength = 6

// AuthController serves registration, login, and the actor profile.
type AuthController struct {
	Auther     *Auther
	Responder  ErrorResponder
	ContextKey string
}

// RegisterRequest payload
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	FullName    string `json:"fullName"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.EmailFormat),
			validation.Field(&r.Password, validation.Required, validation.Length(MinPasswordLength, 0)),
			validation.Field(&r.CompanyName, validation.Required),
		)
	}, "Invalid registration payload")
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

// RegisterPost creates the tenant: company, recruiter account, and default
// theme in one transaction, then hands back a bearer token.
func (a *AuthController) RegisterPost(c *fiber.Ctx) error {
	payload := RegisterRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return a.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.Responder.Respond(c, err)
	}

	result, err := a.Auther.Register(c.Context(), RegisterInput{
		Email:       payload.Email,
		Password:    payload.Password,
		CompanyName: payload.CompanyName,
		FullName:    payload.FullName,
	})
	if err != nil {
		return a.Responder.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   result.Token,
		"user":    userEnvelope(result.Account),
		"company": companyEnvelope(result.Company),
	})
}

// LoginPost verifies credentials and issues a token. The failure response is
// identical for unknown email and wrong password.
func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := LoginRequest{}
	if err := c.BodyParser(&payload); err != nil {
		return a.Responder.Respond(c, goerrors.Wrap(err, goerrors.CategoryBadInput, "Invalid request body").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return a.Responder.Respond(c, err)
	}

	result, err := a.Auther.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.Responder.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   result.Token,
		"user":    userEnvelope(result.Account),
		"company": companyEnvelope(result.Company),
	})
}

// MeShow returns the actor's account and company.
func (a *AuthController) MeShow(c *fiber.Ctx) error {
	userID, err := ActorUserID(c, a.ContextKey)
	if err != nil {
		return a.Responder.Respond(c, err)
	}

	account, err := a.Auther.Me(c.Context(), userID)
	if err != nil {
		return a.Responder.Respond(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    userEnvelope(account),
		"company": companyEnvelope(account.Company),
	})
}

func userEnvelope(account *Account) fiber.Map {
	if account == nil {
		return nil
	}
	return fiber.Map{
		"id":       account.ID,
		"email":    account.Email,
		"fullName": account.FullName,
	}
}

func companyEnvelope(company *Company) fiber.Map {
	if company == nil {
		return nil
	}
	return fiber.Map{
		"id":   company.ID,
		"name": company.Name,
		"slug": company.Slug,
	}
}
