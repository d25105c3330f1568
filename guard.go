package careers

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OwnershipGuard decides whether an authenticated actor may mutate a
// company's resources. Every mutating operation goes through it; public
// reads never do.
//
// A target that does not exist and a target owned by a different company
// produce the same ErrNotAuthorized, so responses never reveal whether the
// company exists.
type OwnershipGuard struct {
	db     bun.IDB
	logger Logger
}

func NewOwnershipGuard(db bun.IDB) *OwnershipGuard {
	return &OwnershipGuard{db: db, logger: defLogger{}}
}

func (g *OwnershipGuard) WithLogger(logger Logger) *OwnershipGuard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// AuthorizeCompany resolves the target company by slug or id and requires it
// to be the actor's own company.
func (g *OwnershipGuard) AuthorizeCompany(ctx context.Context, actorCompanyID uuid.UUID, slugOrID string) (*Company, error) {
	return g.AuthorizeCompanyTx(ctx, g.db, actorCompanyID, slugOrID)
}

func (g *OwnershipGuard) AuthorizeCompanyTx(ctx context.Context, tx bun.IDB, actorCompanyID uuid.UUID, slugOrID string) (*Company, error) {
	record := &Company{}

	q := tx.NewSelect().Model(record)
	if id, err := uuid.Parse(slugOrID); err == nil {
		q = q.Where("?TableAlias.id = ?", id)
	} else {
		q = q.Where("?TableAlias.slug = ?", slugOrID)
	}

	err := q.Where("?TableAlias.id = ?", actorCompanyID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			g.logger.Debug("ownership check rejected", "target", slugOrID, "actor_company", actorCompanyID.String())
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	return record, nil
}

// AuthorizeJob checks ownership of a posting transitively: the job row is
// joined to its parent company and both the URL slug and the actor's company
// id must line up in a single lookup. Jobs carry no ACL of their own.
func (g *OwnershipGuard) AuthorizeJob(ctx context.Context, actorCompanyID uuid.UUID, companySlug string, jobID uuid.UUID) (*Job, error) {
	record := &Job{}
	err := g.db.NewSelect().
		Model(record).
		Join("JOIN companies AS cmp ON cmp.id = ?TableAlias.company_id").
		Where("?TableAlias.id = ?", jobID).
		Where("cmp.slug = ?", companySlug).
		Where("cmp.id = ?", actorCompanyID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			g.logger.Debug("job ownership check rejected", "job", jobID.String(), "actor_company", actorCompanyID.String())
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	return record, nil
}

// AuthorizeSection is the section counterpart of AuthorizeJob.
func (g *OwnershipGuard) AuthorizeSection(ctx context.Context, actorCompanyID uuid.UUID, companySlug string, sectionID uuid.UUID) (*Section, error) {
	record := &Section{}
	err := g.db.NewSelect().
		Model(record).
		Join("JOIN companies AS cmp ON cmp.id = ?TableAlias.company_id").
		Where("?TableAlias.id = ?", sectionID).
		Where("cmp.slug = ?", companySlug).
		Where("cmp.id = ?", actorCompanyID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNotFound(err) {
			g.logger.Debug("section ownership check rejected", "section", sectionID.String(), "actor_company", actorCompanyID.String())
			return nil, ErrNotAuthorized
		}
		return nil, err
	}
	return record, nil
}
