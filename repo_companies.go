package careers

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Companies is the tenant root repository. Company slugs are unique across
// the whole table; allocation runs in the same transaction as the insert.
type Companies interface {
	repository.Repository[*Company]

	GetBySlug(ctx context.Context, slug string) (*Company, error)
	GetBySlugTx(ctx context.Context, tx bun.IDB, slug string) (*Company, error)
	SlugTakenTx(ctx context.Context, tx bun.IDB, slug string) (bool, error)
	CreateWithAllocatedSlugTx(ctx context.Context, tx bun.IDB, record *Company) (*Company, error)
}

type companies struct {
	repository.Repository[*Company]
	db *bun.DB
}

var _ Companies = (*companies)(nil)

func NewCompaniesRepository(db *bun.DB) Companies {
	repo := repository.NewRepository[*Company](db, repository.ModelHandlers[*Company]{
		NewRecord: func() *Company { return &Company{} },
		GetID: func(c *Company) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Company, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "slug"
		},
	})

	return &companies{
		Repository: repo,
		db:         db,
	}
}

func (c *companies) GetBySlug(ctx context.Context, slug string) (*Company, error) {
	return c.GetBySlugTx(ctx, c.db, slug)
}

func (c *companies) GetBySlugTx(ctx context.Context, tx bun.IDB, slug string) (*Company, error) {
	record := &Company{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"slug": slug})
		}
		return nil, err
	}
	return record, nil
}

func (c *companies) SlugTakenTx(ctx context.Context, tx bun.IDB, slug string) (bool, error) {
	return tx.NewSelect().
		Model((*Company)(nil)).
		Where("?TableAlias.slug = ?", slug).
		Exists(ctx)
}

// CreateWithAllocatedSlugTx derives the slug from the company name inside the
// enclosing transaction. When the insert still trips the uniqueness
// constraint (two registrations racing past the pre-check) it retries exactly
// once with a timestamp-suffixed slug.
func (c *companies) CreateWithAllocatedSlugTx(ctx context.Context, tx bun.IDB, record *Company) (*Company, error) {
	slug, err := AllocateSlug(ctx, record.Name, func(ctx context.Context, candidate string) (bool, error) {
		return c.SlugTakenTx(ctx, tx, candidate)
	})
	if err != nil {
		return nil, err
	}
	record.Slug = slug

	created, err := c.createTx(ctx, tx, record)
	if err == nil {
		return created, nil
	}
	if !IsUniqueViolation(err) {
		return nil, err
	}

	record.Slug = SuffixSlug(Slugify(record.Name))
	created, err = c.createTx(ctx, tx, record)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return created, nil
}

func (c *companies) createTx(ctx context.Context, tx bun.IDB, record *Company) (*Company, error) {
	prepareCompanyDefaults(record)
	return c.Repository.CreateTx(ctx, tx, record)
}

func (c *companies) Create(ctx context.Context, record *Company, criteria ...repository.InsertCriteria) (*Company, error) {
	return c.CreateTx(ctx, c.db, record, criteria...)
}

func (c *companies) CreateTx(ctx context.Context, tx bun.IDB, record *Company, criteria ...repository.InsertCriteria) (*Company, error) {
	prepareCompanyDefaults(record)
	return c.Repository.CreateTx(ctx, tx, record, criteria...)
}

func prepareCompanyDefaults(record *Company) {
	if record == nil {
		return
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
