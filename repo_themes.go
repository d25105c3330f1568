package careers

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Themes is the branding repository. Exactly one row per company, created
// alongside the company at registration.
type Themes interface {
	repository.Repository[*Theme]

	GetByCompanySlug(ctx context.Context, slug string) (*Theme, error)
	GetByCompanyID(ctx context.Context, companyID uuid.UUID) (*Theme, error)
	GetByCompanyIDTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) (*Theme, error)
	CreateDefaultTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) (*Theme, error)
}

type themes struct {
	repository.Repository[*Theme]
	db *bun.DB
}

var _ Themes = (*themes)(nil)

func NewThemesRepository(db *bun.DB) Themes {
	repo := repository.NewRepository[*Theme](db, repository.ModelHandlers[*Theme]{
		NewRecord: func() *Theme { return &Theme{} },
		GetID: func(t *Theme) uuid.UUID {
			if t == nil {
				return uuid.Nil
			}
			return t.ID
		},
		SetID: func(t *Theme, id uuid.UUID) {
			if t != nil {
				t.ID = id
			}
		},
	})

	return &themes{
		Repository: repo,
		db:         db,
	}
}

// GetByCompanySlug resolves the theme through the owning company so a slug
// can never address another tenant's row.
func (t *themes) GetByCompanySlug(ctx context.Context, slug string) (*Theme, error) {
	record := &Theme{}
	err := t.db.NewSelect().
		Model(record).
		Join("JOIN companies AS cmp ON cmp.id = ?TableAlias.company_id").
		Where("cmp.slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"company_slug": slug})
		}
		return nil, err
	}
	return record, nil
}

func (t *themes) GetByCompanyID(ctx context.Context, companyID uuid.UUID) (*Theme, error) {
	return t.GetByCompanyIDTx(ctx, t.db, companyID)
}

func (t *themes) GetByCompanyIDTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) (*Theme, error) {
	record := &Theme{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.company_id = ?", companyID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"company_id": companyID.String()})
		}
		return nil, err
	}
	return record, nil
}

// Default branding for companies that have not customized their theme yet.
const (
	DefaultPrimaryColor   = "#2563eb"
	DefaultSecondaryColor = "#1e40af"
)

// CreateDefaultTx inserts the default theme for a fresh company.
func (t *themes) CreateDefaultTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) (*Theme, error) {
	record := &Theme{
		ID:             uuid.New(),
		CompanyID:      companyID,
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
	}
	return t.Repository.CreateTx(ctx, tx, record)
}
