package careers

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// RepositoryManager exposes all repositories plus the transaction runner that
// every multi-statement mutation goes through.
type RepositoryManager interface {
	repository.Validator
	repository.TransactionManager
	Accounts() Accounts
	Companies() Companies
	Themes() Themes
	Sections() Sections
	Jobs() Jobs
	DB() *bun.DB
}

type mngr struct {
	db        *bun.DB
	accounts  Accounts
	companies Companies
	themes    Themes
	sections  Sections
	jobs      Jobs
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:        db,
		accounts:  NewAccountsRepository(db),
		companies: NewCompaniesRepository(db),
		themes:    NewThemesRepository(db),
		sections:  NewSectionsRepository(db),
		jobs:      NewJobsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.accounts == nil {
		return errors.New("repository accounts should be initialized")
	}
	if m.companies == nil {
		return errors.New("repository companies should be initialized")
	}
	if m.themes == nil {
		return errors.New("repository themes should be initialized")
	}
	if m.sections == nil {
		return errors.New("repository sections should be initialized")
	}
	if m.jobs == nil {
		return errors.New("repository jobs should be initialized")
	}
	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Accounts() Accounts   { return m.accounts }
func (m mngr) Companies() Companies { return m.companies }
func (m mngr) Themes() Themes       { return m.themes }
func (m mngr) Sections() Sections   { return m.sections }
func (m mngr) Jobs() Jobs           { return m.jobs }
func (m mngr) DB() *bun.DB          { return m.db }
