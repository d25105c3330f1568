package careers_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	careers "github.com/hirepage/careers"
)

func TestCompanyProfile(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	registerTenant(t, env, "jane@techcorp.com", "TechCorp")

	t.Run("Existing company includes theme", func(t *testing.T) {
		company, err := env.store.CompanyProfile(ctx, "techcorp")
		require.NoError(t, err)
		assert.Equal(t, "TechCorp", company.Name)
		require.NotNil(t, company.Theme)
		assert.Equal(t, careers.DefaultPrimaryColor, company.Theme.PrimaryColor)
	})

	t.Run("Unknown slug", func(t *testing.T) {
		_, err := env.store.CompanyProfile(ctx, "nope")
		assert.Equal(t, careers.ErrCompanyNotFound, err)
	})
}

func TestUpdateCompany(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	t.Run("Partial update touches only the sent fields", func(t *testing.T) {
		updated, err := env.store.UpdateCompany(ctx, owner.Company.ID, "techcorp", careers.CompanyUpdate{
			Description: strPtr("We build things."),
		})
		require.NoError(t, err)
		assert.Equal(t, "TechCorp", updated.Name)
		assert.Equal(t, "We build things.", updated.Description)
	})

	t.Run("Empty update is a no-op", func(t *testing.T) {
		updated, err := env.store.UpdateCompany(ctx, owner.Company.ID, "techcorp", careers.CompanyUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "TechCorp", updated.Name)
		assert.Equal(t, "We build things.", updated.Description)
	})

	t.Run("Name change does not move the slug", func(t *testing.T) {
		updated, err := env.store.UpdateCompany(ctx, owner.Company.ID, "techcorp", careers.CompanyUpdate{
			Name: strPtr("TechCorp International"),
		})
		require.NoError(t, err)
		assert.Equal(t, "TechCorp International", updated.Name)
		assert.Equal(t, "techcorp", updated.Slug)
	})

	t.Run("Foreign actor is rejected", func(t *testing.T) {
		_, err := env.store.UpdateCompany(ctx, stranger.Company.ID, "techcorp", careers.CompanyUpdate{
			Name: strPtr("Hijacked"),
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)

		company, err := env.store.CompanyProfile(ctx, "techcorp")
		require.NoError(t, err)
		assert.Equal(t, "TechCorp International", company.Name)
	})
}

func TestUpdateTheme(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		theme, err := env.store.UpdateTheme(ctx, owner.Company.ID, "techcorp", careers.ThemeUpdate{
			PrimaryColor: strPtr("#ff0000"),
			LogoURL:      strPtr("/uploads/logo.png"),
		})
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", theme.PrimaryColor)
		assert.Equal(t, careers.DefaultSecondaryColor, theme.SecondaryColor)
		assert.Equal(t, "/uploads/logo.png", theme.LogoURL)
	})

	t.Run("Foreign actor is rejected", func(t *testing.T) {
		_, err := env.store.UpdateTheme(ctx, stranger.Company.ID, "techcorp", careers.ThemeUpdate{
			PrimaryColor: strPtr("#000000"),
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Public read by slug", func(t *testing.T) {
		theme, err := env.store.ThemeBySlug(ctx, "techcorp")
		require.NoError(t, err)
		assert.Equal(t, "#ff0000", theme.PrimaryColor)
	})
}

func TestCreateJobSlugs(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	first := registerTenant(t, env, "a@one.com", "One Co")
	second := registerTenant(t, env, "b@two.com", "Two Co")

	job1, err := env.store.CreateJob(ctx, first.Company.ID, "one-co", careers.JobInput{
		Title:       "Senior Frontend Developer",
		Description: "Build UIs",
	})
	require.NoError(t, err)
	assert.Equal(t, "senior-frontend-developer", job1.Slug)
	assert.False(t, job1.IsPublished)

	// same title in another company reuses the clean slug
	job2, err := env.store.CreateJob(ctx, second.Company.ID, "two-co", careers.JobInput{
		Title:       "Senior Frontend Developer",
		Description: "Build UIs elsewhere",
	})
	require.NoError(t, err)
	assert.Equal(t, "senior-frontend-developer", job2.Slug)

	// same title in the same company suffixes
	job3, err := env.store.CreateJob(ctx, first.Company.ID, "one-co", careers.JobInput{
		Title:       "Senior Frontend Developer",
		Description: "Second opening",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(job3.Slug, "senior-frontend-developer-"))
	assert.NotEqual(t, job1.Slug, job3.Slug)
}

func TestJobVisibility(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	published, err := env.store.CreateJob(ctx, owner.Company.ID, "techcorp", careers.JobInput{
		Title:       "Backend Engineer",
		Description: "Go services",
		IsPublished: true,
	})
	require.NoError(t, err)

	draft, err := env.store.CreateJob(ctx, owner.Company.ID, "techcorp", careers.JobInput{
		Title:       "Designer",
		Description: "Make it pretty",
	})
	require.NoError(t, err)

	t.Run("Public listing shows only published", func(t *testing.T) {
		jobs, err := env.store.PublishedJobs(ctx, "techcorp", careers.JobFilter{})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, published.ID, jobs[0].ID)
	})

	t.Run("Owner listing shows drafts too", func(t *testing.T) {
		jobs, err := env.store.AllJobs(ctx, owner.Company.ID, "techcorp")
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("Stranger cannot read the full listing", func(t *testing.T) {
		_, err := env.store.AllJobs(ctx, stranger.Company.ID, "techcorp")
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Public job detail only resolves published", func(t *testing.T) {
		job, err := env.store.PublishedJob(ctx, "techcorp", published.Slug)
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", job.Title)

		_, err = env.store.PublishedJob(ctx, "techcorp", draft.Slug)
		assert.Equal(t, careers.ErrJobNotFound, err)
	})

	t.Run("Publishing a draft exposes it", func(t *testing.T) {
		_, err := env.store.SetJobPublished(ctx, owner.Company.ID, "techcorp", draft.ID, true)
		require.NoError(t, err)

		jobs, err := env.store.PublishedJobs(ctx, "techcorp", careers.JobFilter{})
		require.NoError(t, err)
		assert.Len(t, jobs, 2)
	})

	t.Run("Unpublishing hides it again", func(t *testing.T) {
		_, err := env.store.SetJobPublished(ctx, owner.Company.ID, "techcorp", draft.ID, false)
		require.NoError(t, err)

		_, err = env.store.PublishedJob(ctx, "techcorp", draft.Slug)
		assert.Equal(t, careers.ErrJobNotFound, err)
	})
}

func TestJobFilters(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")

	seed := []careers.JobInput{
		{Title: "Senior Go Engineer", Description: "Distributed systems", Location: "Berlin", JobType: "full-time", Department: "Engineering", IsPublished: true},
		{Title: "Product Designer", Description: "Own the design system", Location: "Remote", JobType: "full-time", Department: "Design", IsPublished: true},
		{Title: "Support Intern", Description: "Help customers with Go SDK", Location: "berlin", JobType: "internship", Department: "Support", IsPublished: true},
	}
	for _, input := range seed {
		_, err := env.store.CreateJob(ctx, owner.Company.ID, "techcorp", input)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter careers.JobFilter
		want   int
	}{
		{
			name:   "No filter",
			filter: careers.JobFilter{},
			want:   3,
		},
		{
			name:   "Search matches title case-insensitive",
			filter: careers.JobFilter{Search: "go"},
			want:   2, // title match and description match
		},
		{
			name:   "Search matches description",
			filter: careers.JobFilter{Search: "design system"},
			want:   1,
		},
		{
			name:   "Location is case-insensitive substring",
			filter: careers.JobFilter{Location: "BERLIN"},
			want:   2,
		},
		{
			name:   "JobType is exact",
			filter: careers.JobFilter{JobType: "internship"},
			want:   1,
		},
		{
			name:   "Department is exact",
			filter: careers.JobFilter{Department: "Design"},
			want:   1,
		},
		{
			name:   "Filters combine",
			filter: careers.JobFilter{Location: "berlin", JobType: "full-time"},
			want:   1,
		},
		{
			name:   "No match",
			filter: careers.JobFilter{Search: "rust"},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := env.store.PublishedJobs(ctx, "techcorp", tt.filter)
			require.NoError(t, err)
			assert.Len(t, jobs, tt.want)
		})
	}
}

func TestUpdateJob(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	job, err := env.store.CreateJob(ctx, owner.Company.ID, "techcorp", careers.JobInput{
		Title:       "Backend Engineer",
		Description: "Go services",
		Location:    "Berlin",
	})
	require.NoError(t, err)

	t.Run("Partial update", func(t *testing.T) {
		updated, err := env.store.UpdateJob(ctx, owner.Company.ID, "techcorp", job.ID, careers.JobUpdate{
			Location: strPtr("Remote"),
			Salary:   strPtr("90-120k EUR"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Backend Engineer", updated.Title)
		assert.Equal(t, "Remote", updated.Location)
		assert.Equal(t, "90-120k EUR", updated.Salary)
		assert.Equal(t, job.Slug, updated.Slug)
	})

	t.Run("Title change keeps the slug stable", func(t *testing.T) {
		updated, err := env.store.UpdateJob(ctx, owner.Company.ID, "techcorp", job.ID, careers.JobUpdate{
			Title: strPtr("Staff Backend Engineer"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Staff Backend Engineer", updated.Title)
		assert.Equal(t, "backend-engineer", updated.Slug)
	})

	t.Run("Foreign actor is rejected", func(t *testing.T) {
		_, err := env.store.UpdateJob(ctx, stranger.Company.ID, "techcorp", job.ID, careers.JobUpdate{
			Title: strPtr("Hijacked"),
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Unknown job id", func(t *testing.T) {
		_, err := env.store.UpdateJob(ctx, owner.Company.ID, "techcorp", uuid.New(), careers.JobUpdate{
			Title: strPtr("Ghost"),
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})
}

func TestDeleteJob(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	job, err := env.store.CreateJob(ctx, owner.Company.ID, "techcorp", careers.JobInput{
		Title:       "Backend Engineer",
		Description: "Go services",
		IsPublished: true,
	})
	require.NoError(t, err)

	t.Run("Foreign actor cannot delete", func(t *testing.T) {
		err := env.store.DeleteJob(ctx, stranger.Company.ID, "techcorp", job.ID)
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Owner deletes", func(t *testing.T) {
		err := env.store.DeleteJob(ctx, owner.Company.ID, "techcorp", job.ID)
		require.NoError(t, err)

		jobs, err := env.store.PublishedJobs(ctx, "techcorp", careers.JobFilter{})
		require.NoError(t, err)
		assert.Empty(t, jobs)
	})

	t.Run("Second delete reports not authorized", func(t *testing.T) {
		err := env.store.DeleteJob(ctx, owner.Company.ID, "techcorp", job.ID)
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})
}
