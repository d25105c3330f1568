package careers

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TenantStore is the CRUD surface for a company's careers page. Every
// mutating method proves ownership through the guard before touching a row;
// public reads are scoped by the URL slug and nothing else.
type TenantStore struct {
	repo   RepositoryManager
	guard  *OwnershipGuard
	logger Logger
}

func NewTenantStore(repo RepositoryManager, guard *OwnershipGuard) *TenantStore {
	return &TenantStore{
		repo:   repo,
		guard:  guard,
		logger: defLogger{},
	}
}

func (s *TenantStore) WithLogger(logger Logger) *TenantStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Guard exposes the ownership guard for callers composing extra checks.
func (s *TenantStore) Guard() *OwnershipGuard { return s.guard }

// ---------------------------------------------------------------------------
// Companies

// CompanyProfile is the public page payload: company plus theme.
func (s *TenantStore) CompanyProfile(ctx context.Context, slug string) (*Company, error) {
	record := &Company{}
	err := s.repo.DB().NewSelect().
		Model(record).
		Relation("Theme").
		Where("?TableAlias.slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCompanyNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch company")
	}
	return record, nil
}

// CompanyUpdate carries a partial update. Nil fields keep the stored value.
type CompanyUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *TenantStore) UpdateCompany(ctx context.Context, actorCompanyID uuid.UUID, slug string, input CompanyUpdate) (*Company, error) {
	company, err := s.guard.AuthorizeCompany(ctx, actorCompanyID, slug)
	if err != nil {
		return nil, err
	}

	q := s.repo.DB().NewUpdate().
		Model((*Company)(nil)).
		Where("?TableAlias.id = ?", company.ID)

	touched := false
	if input.Name != nil {
		q.Set("name = ?", *input.Name)
		touched = true
	}
	if input.Description != nil {
		q.Set("description = ?", *input.Description)
		touched = true
	}
	if touched {
		q.Set("updated_at = CURRENT_TIMESTAMP")
		if _, err := q.Exec(ctx); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update company")
		}
	}

	return s.repo.Companies().GetBySlug(ctx, slug)
}

// ---------------------------------------------------------------------------
// Themes

func (s *TenantStore) ThemeBySlug(ctx context.Context, slug string) (*Theme, error) {
	theme, err := s.repo.Themes().GetByCompanySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrThemeNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch theme")
	}
	return theme, nil
}

// ThemeUpdate carries a partial theme update. Nil fields keep stored values.
type ThemeUpdate struct {
	PrimaryColor   *string `json:"primaryColor"`
	SecondaryColor *string `json:"secondaryColor"`
	VideoURL       *string `json:"videoUrl"`
	LogoURL        *string `json:"logoUrl"`
	BannerURL      *string `json:"bannerUrl"`
}

func (s *TenantStore) UpdateTheme(ctx context.Context, actorCompanyID uuid.UUID, slug string, input ThemeUpdate) (*Theme, error) {
	company, err := s.guard.AuthorizeCompany(ctx, actorCompanyID, slug)
	if err != nil {
		return nil, err
	}

	q := s.repo.DB().NewUpdate().
		Model((*Theme)(nil)).
		Where("?TableAlias.company_id = ?", company.ID)

	touched := false
	if input.PrimaryColor != nil {
		q.Set("primary_color = ?", *input.PrimaryColor)
		touched = true
	}
	if input.SecondaryColor != nil {
		q.Set("secondary_color = ?", *input.SecondaryColor)
		touched = true
	}
	if input.VideoURL != nil {
		q.Set("video_url = ?", *input.VideoURL)
		touched = true
	}
	if input.LogoURL != nil {
		q.Set("logo_url = ?", *input.LogoURL)
		touched = true
	}
	if input.BannerURL != nil {
		q.Set("banner_url = ?", *input.BannerURL)
		touched = true
	}
	if touched {
		q.Set("updated_at = CURRENT_TIMESTAMP")
		if _, err := q.Exec(ctx); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update theme")
		}
	}

	theme, err := s.repo.Themes().GetByCompanyID(ctx, company.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrThemeNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch theme")
	}
	return theme, nil
}

// ---------------------------------------------------------------------------
// Jobs

// JobInput is a new posting. Title and description are required; the slug is
// allocated from the title within the company's partition.
type JobInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Workplace   string `json:"workplace"`
	Location    string `json:"location"`
	Department  string `json:"department"`
	JobType     string `json:"jobType"`
	Seniority   string `json:"seniority"`
	Salary      string `json:"salary"`
	IsPublished bool   `json:"isPublished"`
}

func (s *TenantStore) CreateJob(ctx context.Context, actorCompanyID uuid.UUID, slug string, input JobInput) (*Job, error) {
	company, err := s.guard.AuthorizeCompany(ctx, actorCompanyID, slug)
	if err != nil {
		return nil, err
	}

	var created *Job
	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		created, err = s.repo.Jobs().CreateWithAllocatedSlugTx(ctx, tx, &Job{
			CompanyID:   company.ID,
			Title:       input.Title,
			Description: input.Description,
			Workplace:   input.Workplace,
			Location:    input.Location,
			Department:  input.Department,
			JobType:     input.JobType,
			Seniority:   input.Seniority,
			Salary:      input.Salary,
			IsPublished: input.IsPublished,
		})
		return err
	})
	if err != nil {
		if IsDuplicateSlug(err) {
			return nil, err
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create job")
	}
	return created, nil
}

// JobUpdate carries a partial job update. Nil fields keep stored values;
// IsPublished can flip either way regardless of other edits.
type JobUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Workplace   *string `json:"workplace"`
	Location    *string `json:"location"`
	Department  *string `json:"department"`
	JobType     *string `json:"jobType"`
	Seniority   *string `json:"seniority"`
	Salary      *string `json:"salary"`
	IsPublished *bool   `json:"isPublished"`
}

func (s *TenantStore) UpdateJob(ctx context.Context, actorCompanyID uuid.UUID, slug string, jobID uuid.UUID, input JobUpdate) (*Job, error) {
	if _, err := s.guard.AuthorizeJob(ctx, actorCompanyID, slug, jobID); err != nil {
		return nil, err
	}

	q := s.repo.DB().NewUpdate().
		Model((*Job)(nil)).
		Where("?TableAlias.id = ?", jobID)

	touched := false
	if input.Title != nil {
		q.Set("title = ?", *input.Title)
		touched = true
	}
	if input.Description != nil {
		q.Set("description = ?", *input.Description)
		touched = true
	}
	if input.Workplace != nil {
		q.Set("workplace = ?", *input.Workplace)
		touched = true
	}
	if input.Location != nil {
		q.Set("location = ?", *input.Location)
		touched = true
	}
	if input.Department != nil {
		q.Set("department = ?", *input.Department)
		touched = true
	}
	if input.JobType != nil {
		q.Set("job_type = ?", *input.JobType)
		touched = true
	}
	if input.Seniority != nil {
		q.Set("seniority = ?", *input.Seniority)
		touched = true
	}
	if input.Salary != nil {
		q.Set("salary = ?", *input.Salary)
		touched = true
	}
	if input.IsPublished != nil {
		q.Set("is_published = ?", *input.IsPublished)
		touched = true
	}
	if touched {
		q.Set("updated_at = CURRENT_TIMESTAMP")
		if _, err := q.Exec(ctx); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update job")
		}
	}

	return s.jobByID(ctx, jobID)
}

// SetJobPublished flips the draft/live flag without touching other fields.
func (s *TenantStore) SetJobPublished(ctx context.Context, actorCompanyID uuid.UUID, slug string, jobID uuid.UUID, published bool) (*Job, error) {
	if _, err := s.guard.AuthorizeJob(ctx, actorCompanyID, slug, jobID); err != nil {
		return nil, err
	}

	_, err := s.repo.DB().NewUpdate().
		Model((*Job)(nil)).
		Set("is_published = ?", published).
		Set("updated_at = CURRENT_TIMESTAMP").
		Where("?TableAlias.id = ?", jobID).
		Exec(ctx)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update job status")
	}

	return s.jobByID(ctx, jobID)
}

func (s *TenantStore) DeleteJob(ctx context.Context, actorCompanyID uuid.UUID, slug string, jobID uuid.UUID) error {
	if _, err := s.guard.AuthorizeJob(ctx, actorCompanyID, slug, jobID); err != nil {
		return err
	}

	_, err := s.repo.DB().NewDelete().
		Model((*Job)(nil)).
		Where("?TableAlias.id = ?", jobID).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete job")
	}
	return nil
}

func (s *TenantStore) PublishedJobs(ctx context.Context, slug string, filter JobFilter) ([]*Job, error) {
	records, err := s.repo.Jobs().ListPublishedByCompanySlug(ctx, slug, filter)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch jobs")
	}
	return records, nil
}

// AllJobs includes drafts and therefore requires ownership of the company.
func (s *TenantStore) AllJobs(ctx context.Context, actorCompanyID uuid.UUID, slug string) ([]*Job, error) {
	company, err := s.guard.AuthorizeCompany(ctx, actorCompanyID, slug)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.Jobs().ListByCompanyID(ctx, company.ID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch jobs")
	}
	return records, nil
}

func (s *TenantStore) PublishedJob(ctx context.Context, slug, jobSlug string) (*Job, error) {
	record, err := s.repo.Jobs().GetPublishedBySlug(ctx, slug, jobSlug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch job")
	}
	return record, nil
}

func (s *TenantStore) jobByID(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	record := &Job{}
	err := s.repo.DB().NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", jobID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrJobNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch job")
	}
	return record, nil
}

// ---------------------------------------------------------------------------
// Sections

func (s *TenantStore) Sections(ctx context.Context, slug string) ([]*Section, error) {
	records, err := s.repo.Sections().ListByCompanySlug(ctx, slug)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch sections")
	}
	return records, nil
}

// SectionInput is a new content block. It is always appended at the end of
// the company's ordering.
type SectionInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	SectionType string `json:"sectionType"`
	IsVisible   *bool  `json:"isVisible"`
}

func (s *TenantStore) CreateSection(ctx context.Context, actorCompanyID uuid.UUID, slug string, input SectionInput) (*Section, error) {
	company, err := s.guard.AuthorizeCompany(ctx, actorCompanyID, slug)
	if err != nil {
		return nil, err
	}

	visible := true
	if input.IsVisible != nil {
		visible = *input.IsVisible
	}

	var created *Section
	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		next, err := s.repo.Sections().NextOrderIndexTx(ctx, tx, company.ID)
		if err != nil {
			return err
		}

		created, err = s.repo.Sections().CreateTx(ctx, tx, &Section{
			CompanyID:   company.ID,
			Title:       input.Title,
			Content:     input.Content,
			SectionType: input.SectionType,
			OrderIndex:  next,
			IsVisible:   visible,
		})
		return err
	})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create section")
	}
	return created, nil
}

// SectionUpdate carries a partial section update. Order changes go through
// ReorderSections, never here.
type SectionUpdate struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	SectionType *string `json:"sectionType"`
	IsVisible   *bool   `json:"isVisible"`
}

func (s *TenantStore) UpdateSection(ctx context.Context, actorCompanyID uuid.UUID, slug string, sectionID uuid.UUID, input SectionUpdate) (*Section, error) {
	if _, err := s.guard.AuthorizeSection(ctx, actorCompanyID, slug, sectionID); err != nil {
		return nil, err
	}

	q := s.repo.DB().NewUpdate().
		Model((*Section)(nil)).
		Where("?TableAlias.id = ?", sectionID)

	touched := false
	if input.Title != nil {
		q.Set("title = ?", *input.Title)
		touched = true
	}
	if input.Content != nil {
		q.Set("content = ?", *input.Content)
		touched = true
	}
	if input.SectionType != nil {
		q.Set("section_type = ?", *input.SectionType)
		touched = true
	}
	if input.IsVisible != nil {
		q.Set("is_visible = ?", *input.IsVisible)
		touched = true
	}
	if touched {
		q.Set("updated_at = CURRENT_TIMESTAMP")
		if _, err := q.Exec(ctx); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update section")
		}
	}

	record := &Section{}
	err := s.repo.DB().NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", sectionID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSectionNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch section")
	}
	return record, nil
}

// DeleteSection removes the block and compacts the remaining indices in the
// same transaction, so the dense permutation survives deletion.
func (s *TenantStore) DeleteSection(ctx context.Context, actorCompanyID uuid.UUID, slug string, sectionID uuid.UUID) error {
	section, err := s.guard.AuthorizeSection(ctx, actorCompanyID, slug, sectionID)
	if err != nil {
		return err
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().
			Model((*Section)(nil)).
			Where("?TableAlias.id = ?", sectionID).
			Where("?TableAlias.company_id = ?", section.CompanyID).
			Exec(ctx)
		if err != nil {
			return err
		}
		return s.repo.Sections().CompactTx(ctx, tx, section.CompanyID)
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete section")
	}
	return nil
}

// ReorderSections assigns 0-based positions following the supplied id order,
// all inside one transaction. Ids outside the caller's company are skipped by
// the ownership-scoped WHERE clause; a follow-up compaction keeps the
// permutation dense even when foreign or stale ids appear in the list.
func (s *TenantStore) ReorderSections(ctx context.Context, actorCompanyID uuid.UUID, slug string, ids []uuid.UUID) error {
	company, err := s.guard.AuthorizeCompany(ctx, actorCompanyID, slug)
	if err != nil {
		return err
	}

	err = s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := s.repo.Sections().ReorderTx(ctx, tx, company.ID, ids); err != nil {
			return err
		}
		return s.repo.Sections().CompactTx(ctx, tx, company.ID)
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to reorder sections")
	}
	return nil
}
