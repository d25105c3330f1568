package careers

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// JobFilter narrows the public listing. Filters compose with AND; a zero
// field imposes no constraint.
type JobFilter struct {
	// Search matches title or description, case-insensitive substring.
	Search string
	// Location is a case-insensitive substring match.
	Location string
	// JobType is an exact match.
	JobType string
	// Department is an exact match.
	Department string
}

// Jobs is the posting repository. Job slugs are unique per company, not
// globally.
type Jobs interface {
	repository.Repository[*Job]

	ListPublishedByCompanySlug(ctx context.Context, slug string, filter JobFilter) ([]*Job, error)
	ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*Job, error)
	GetPublishedBySlug(ctx context.Context, companySlug, jobSlug string) (*Job, error)
	SlugTakenTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID, slug string) (bool, error)
	CreateWithAllocatedSlugTx(ctx context.Context, tx bun.IDB, record *Job) (*Job, error)
}

type jobs struct {
	repository.Repository[*Job]
	db *bun.DB
}

var _ Jobs = (*jobs)(nil)

func NewJobsRepository(db *bun.DB) Jobs {
	repo := repository.NewRepository[*Job](db, repository.ModelHandlers[*Job]{
		NewRecord: func() *Job { return &Job{} },
		GetID: func(j *Job) uuid.UUID {
			if j == nil {
				return uuid.Nil
			}
			return j.ID
		},
		SetID: func(j *Job, id uuid.UUID) {
			if j != nil {
				j.ID = id
			}
		},
		GetIdentifier: func() string {
			return "slug"
		},
	})

	return &jobs{
		Repository: repo,
		db:         db,
	}
}

// ListPublishedByCompanySlug returns the live postings for the company the
// URL slug names, newest first. Scoping through the company join is what
// keeps one tenant's drafts and postings out of another tenant's page.
func (j *jobs) ListPublishedByCompanySlug(ctx context.Context, slug string, filter JobFilter) ([]*Job, error) {
	var records []*Job

	q := j.db.NewSelect().
		Model(&records).
		Join("JOIN companies AS cmp ON cmp.id = ?TableAlias.company_id").
		Where("cmp.slug = ?", slug).
		Where("?TableAlias.is_published = ?", true)

	applyJobFilter(q, filter)

	if err := q.Order("job.created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func applyJobFilter(q *bun.SelectQuery, filter JobFilter) {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("lower(?TableAlias.title) LIKE lower(?)", pattern).
				WhereOr("lower(?TableAlias.description) LIKE lower(?)", pattern)
		})
	}
	if filter.Location != "" {
		q.Where("lower(?TableAlias.location) LIKE lower(?)", "%"+filter.Location+"%")
	}
	if filter.JobType != "" {
		q.Where("?TableAlias.job_type = ?", filter.JobType)
	}
	if filter.Department != "" {
		q.Where("?TableAlias.department = ?", filter.Department)
	}
}

// ListByCompanyID returns every posting for the tenant, drafts included.
// Callers must have passed the ownership guard first.
func (j *jobs) ListByCompanyID(ctx context.Context, companyID uuid.UUID) ([]*Job, error) {
	var records []*Job
	err := j.db.NewSelect().
		Model(&records).
		Where("?TableAlias.company_id = ?", companyID).
		Order("job.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetPublishedBySlug resolves one live posting through the owning company.
// Unpublished postings are invisible here even with the exact slug.
func (j *jobs) GetPublishedBySlug(ctx context.Context, companySlug, jobSlug string) (*Job, error) {
	record := &Job{}
	err := j.db.NewSelect().
		Model(record).
		Relation("Company").
		Join("JOIN companies AS cmp ON cmp.id = ?TableAlias.company_id").
		Where("cmp.slug = ?", companySlug).
		Where("?TableAlias.slug = ?", jobSlug).
		Where("?TableAlias.is_published = ?", true).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"company_slug": companySlug,
					"job_slug":     jobSlug,
				})
		}
		return nil, err
	}
	return record, nil
}

func (j *jobs) SlugTakenTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID, slug string) (bool, error) {
	return tx.NewSelect().
		Model((*Job)(nil)).
		Where("?TableAlias.company_id = ?", companyID).
		Where("?TableAlias.slug = ?", slug).
		Exists(ctx)
}

// CreateWithAllocatedSlugTx derives the job slug from the title within the
// company's partition. Same race posture as company slugs: pre-check inside
// the transaction, uniqueness constraint as backstop, one suffixed retry.
func (j *jobs) CreateWithAllocatedSlugTx(ctx context.Context, tx bun.IDB, record *Job) (*Job, error) {
	slug, err := AllocateSlug(ctx, record.Title, func(ctx context.Context, candidate string) (bool, error) {
		return j.SlugTakenTx(ctx, tx, record.CompanyID, candidate)
	})
	if err != nil {
		return nil, err
	}
	record.Slug = slug

	created, err := j.createTx(ctx, tx, record)
	if err == nil {
		return created, nil
	}
	if !IsUniqueViolation(err) {
		return nil, err
	}

	record.Slug = SuffixSlug(Slugify(record.Title))
	created, err = j.createTx(ctx, tx, record)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}
	return created, nil
}

func (j *jobs) createTx(ctx context.Context, tx bun.IDB, record *Job) (*Job, error) {
	prepareJobDefaults(record)
	return j.Repository.CreateTx(ctx, tx, record)
}

func (j *jobs) Create(ctx context.Context, record *Job, criteria ...repository.InsertCriteria) (*Job, error) {
	return j.CreateTx(ctx, j.db, record, criteria...)
}

func (j *jobs) CreateTx(ctx context.Context, tx bun.IDB, record *Job, criteria ...repository.InsertCriteria) (*Job, error) {
	prepareJobDefaults(record)
	return j.Repository.CreateTx(ctx, tx, record, criteria...)
}

func prepareJobDefaults(record *Job) {
	if record == nil {
		return
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
