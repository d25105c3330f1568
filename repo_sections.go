package careers

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Sections is the page content repository. It owns the dense 0-based
// order_index permutation for each company.
type Sections interface {
	repository.Repository[*Section]

	ListByCompanySlug(ctx context.Context, slug string) ([]*Section, error)
	ListByCompanyIDTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) ([]*Section, error)
	NextOrderIndexTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) (int, error)
	ReorderTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID, ids []uuid.UUID) error
	CompactTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) error
}

type sections struct {
	repository.Repository[*Section]
	db *bun.DB
}

var _ Sections = (*sections)(nil)

func NewSectionsRepository(db *bun.DB) Sections {
	repo := repository.NewRepository[*Section](db, repository.ModelHandlers[*Section]{
		NewRecord: func() *Section { return &Section{} },
		GetID: func(s *Section) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *Section, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
	})

	return &sections{
		Repository: repo,
		db:         db,
	}
}

// ListByCompanySlug returns the company's sections in display order.
func (s *sections) ListByCompanySlug(ctx context.Context, slug string) ([]*Section, error) {
	var records []*Section
	err := s.db.NewSelect().
		Model(&records).
		Join("JOIN companies AS cmp ON cmp.id = ?TableAlias.company_id").
		Where("cmp.slug = ?", slug).
		Order("sec.order_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *sections) ListByCompanyIDTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) ([]*Section, error) {
	var records []*Section
	err := tx.NewSelect().
		Model(&records).
		Where("?TableAlias.company_id = ?", companyID).
		Order("sec.order_index ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// NextOrderIndexTx returns max(order_index)+1 for the company, 0 when the
// company has no sections. New sections always append at the end.
func (s *sections) NextOrderIndexTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) (int, error) {
	var max int
	err := tx.NewSelect().
		ColumnExpr("COALESCE(MAX(?TableAlias.order_index), -1)").
		Model((*Section)(nil)).
		Where("?TableAlias.company_id = ?", companyID).
		Scan(ctx, &max)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// ReorderTx assigns order_index = position for each id, 0-based, in one pass.
// The company_id predicate scopes every update to the caller's tenant: ids
// that belong to another company match nothing and are silently skipped.
func (s *sections) ReorderTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID, ids []uuid.UUID) error {
	for i, id := range ids {
		_, err := tx.NewUpdate().
			Model((*Section)(nil)).
			Set("order_index = ?", i).
			Set("updated_at = CURRENT_TIMESTAMP").
			Where("?TableAlias.id = ?", id).
			Where("?TableAlias.company_id = ?", companyID).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

// CompactTx rewrites the company's order_index values to a dense 0-based
// sequence preserving the current relative order. Invoked after deletion so
// gaps never survive a transaction.
func (s *sections) CompactTx(ctx context.Context, tx bun.IDB, companyID uuid.UUID) error {
	remaining, err := s.ListByCompanyIDTx(ctx, tx, companyID)
	if err != nil {
		return err
	}

	for i, record := range remaining {
		if record.OrderIndex == i {
			continue
		}
		_, err := tx.NewUpdate().
			Model((*Section)(nil)).
			Set("order_index = ?", i).
			Where("?TableAlias.id = ?", record.ID).
			Where("?TableAlias.company_id = ?", companyID).
			Exec(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *sections) Create(ctx context.Context, record *Section, criteria ...repository.InsertCriteria) (*Section, error) {
	return s.CreateTx(ctx, s.db, record, criteria...)
}

func (s *sections) CreateTx(ctx context.Context, tx bun.IDB, record *Section, criteria ...repository.InsertCriteria) (*Section, error) {
	prepareSectionDefaults(record)
	return s.Repository.CreateTx(ctx, tx, record, criteria...)
}

func prepareSectionDefaults(record *Section) {
	if record == nil {
		return
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.SectionType == "" {
		record.SectionType = SectionTypeCustom
	}
}
