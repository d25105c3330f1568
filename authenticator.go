package careers

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Auther owns the identity lifecycle: registration (company + account +
// default theme in one transaction) and stateless bearer login.
type Auther struct {
	repo   RepositoryManager
	tokens TokenService
	logger Logger
}

func NewAuthenticator(repo RepositoryManager, tokens TokenService) *Auther {
	return &Auther{
		repo:   repo,
		tokens: tokens,
		logger: defLogger{},
	}
}

func (a *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		a.logger = logger
	}
	return a
}

// RegisterInput is the registration payload after validation.
type RegisterInput struct {
	Email       string
	Password    string
	CompanyName string
	FullName    string
}

// AuthResult is what a successful register or login yields.
type AuthResult struct {
	Token   string
	Account *Account
	Company *Company
}

// Register creates the company (with its allocated slug), the recruiter
// account, and the default theme atomically. A failure at any step rolls the
// whole registration back; partial tenants are never observable.
func (a *Auther) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	var (
		account *Account
		company *Company
	)

	err := a.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		taken, err := a.repo.Accounts().EmailTakenTx(ctx, tx, input.Email)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check email")
		}
		if taken {
			return ErrEmailTaken
		}

		company, err = a.repo.Companies().CreateWithAllocatedSlugTx(ctx, tx, &Company{
			Name: input.CompanyName,
		})
		if err != nil {
			if IsDuplicateSlug(err) {
				return err
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create company")
		}

		hash, err := HashPassword(input.Password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		account, err = a.repo.Accounts().CreateTx(ctx, tx, &Account{
			Email:        input.Email,
			PasswordHash: hash,
			CompanyID:    company.ID,
			FullName:     input.FullName,
		})
		if err != nil {
			if IsUniqueViolation(err) {
				return ErrEmailTaken
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create account")
		}

		if _, err = a.repo.Themes().CreateDefaultTx(ctx, tx, company.ID); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create default theme")
		}

		return nil
	})
	if err != nil {
		a.logger.Error("registration failed", "email", input.Email, "error", err)
		return nil, err
	}

	token, err := a.tokens.Issue(account)
	if err != nil {
		return nil, err
	}

	account.Company = company
	return &AuthResult{Token: token, Account: account, Company: company}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (a *Auther) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := a.repo.Accounts().GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up account")
	}

	if err := ComparePasswordAndHash(password, account.PasswordHash); err != nil {
		a.logger.Debug("password mismatch", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(account)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, Account: account, Company: account.Company}, nil
}

// Me resolves the actor's account and company from a verified user id.
func (a *Auther) Me(ctx context.Context, userID uuid.UUID) (*Account, error) {
	record := &Account{}
	err := a.repo.DB().NewSelect().
		Model(record).
		Relation("Company").
		Where("?TableAlias.id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, goerrors.New("User not found", goerrors.CategoryNotFound).
				WithCode(goerrors.CodeNotFound)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch account")
	}
	return record, nil
}
