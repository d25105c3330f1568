package careers

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Account is a recruiter login. Every account belongs to exactly one company
// and the company assignment never changes after registration.
type Account struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CompanyID     uuid.UUID  `bun:"company_id,notnull,type:uuid" json:"company_id,omitempty"`
	Company       *Company   `bun:"rel:belongs-to,join:company_id=id" json:"company,omitempty"`
	FullName      string     `bun:"full_name" json:"full_name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Company is the tenant root. Its slug is globally unique, assigned once at
// registration, and never changes.
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:cmp"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Slug          string     `bun:"slug,notnull,unique" json:"slug,omitempty"`
	Description   string     `bun:"description" json:"description,omitempty"`
	Theme         *Theme     `bun:"rel:has-one,join:id=company_id" json:"theme,omitempty"`
	Sections      []*Section `bun:"rel:has-many,join:id=company_id" json:"sections,omitempty"`
	Jobs          []*Job     `bun:"rel:has-many,join:id=company_id" json:"jobs,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Theme holds the careers page branding. One row per company, created with
// defaults at registration and mutated in place afterwards.
type Theme struct {
	bun.BaseModel  `bun:"table:company_themes,alias:thm"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CompanyID      uuid.UUID  `bun:"company_id,notnull,unique,type:uuid" json:"company_id,omitempty"`
	PrimaryColor   string     `bun:"primary_color,notnull,default:'#2563eb'" json:"primary_color,omitempty"`
	SecondaryColor string     `bun:"secondary_color,notnull,default:'#1e40af'" json:"secondary_color,omitempty"`
	VideoURL       string     `bun:"video_url" json:"video_url,omitempty"`
	LogoURL        string     `bun:"logo_url" json:"logo_url,omitempty"`
	BannerURL      string     `bun:"banner_url" json:"banner_url,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// SectionTypeCustom is applied when a section payload does not name a type.
const SectionTypeCustom = "custom"

// Section is a block of careers page content. For a fixed company the
// order_index values form a dense 0-based permutation reflecting display order.
type Section struct {
	bun.BaseModel `bun:"table:company_sections,alias:sec"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CompanyID     uuid.UUID  `bun:"company_id,notnull,type:uuid" json:"company_id,omitempty"`
	Company       *Company   `bun:"rel:belongs-to,join:company_id=id" json:"-"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Content       string     `bun:"content,notnull" json:"content,omitempty"`
	SectionType   string     `bun:"section_type,notnull,default:'custom'" json:"section_type,omitempty"`
	OrderIndex    int        `bun:"order_index,notnull" json:"order_index"`
	IsVisible     bool       `bun:"is_visible,notnull" json:"is_visible"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Job is a posting. Its slug is unique within the owning company only and
// stays stable even when the title changes later. is_published gates public
// visibility with no transition restrictions either way.
type Job struct {
	bun.BaseModel `bun:"table:jobs,alias:job"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	CompanyID     uuid.UUID  `bun:"company_id,notnull,type:uuid,unique:uq_jobs_company_slug" json:"company_id,omitempty"`
	Company       *Company   `bun:"rel:belongs-to,join:company_id=id" json:"-"`
	Title         string     `bun:"title,notnull" json:"title,omitempty"`
	Slug          string     `bun:"slug,notnull,unique:uq_jobs_company_slug" json:"slug,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	Workplace     string     `bun:"workplace" json:"workplace,omitempty"`
	Location      string     `bun:"location" json:"location,omitempty"`
	Department    string     `bun:"department" json:"department,omitempty"`
	JobType       string     `bun:"job_type" json:"job_type,omitempty"`
	Seniority     string     `bun:"seniority" json:"seniority,omitempty"`
	Salary        string     `bun:"salary" json:"salary,omitempty"`
	IsPublished   bool       `bun:"is_published,notnull,default:false" json:"is_published"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
