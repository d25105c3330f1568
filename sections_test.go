package careers_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	careers "github.com/hirepage/careers"
)

func createSections(t *testing.T, env *testEnv, companyID uuid.UUID, slug string, titles ...string) []*careers.Section {
	t.Helper()

	out := make([]*careers.Section, 0, len(titles))
	for _, title := range titles {
		section, err := env.store.CreateSection(context.Background(), companyID, slug, careers.SectionInput{
			Title:   title,
			Content: "content for " + title,
		})
		require.NoError(t, err)
		out = append(out, section)
	}
	return out
}

func sectionOrder(t *testing.T, env *testEnv, slug string) []string {
	t.Helper()

	records, err := env.store.Sections(context.Background(), slug)
	require.NoError(t, err)

	titles := make([]string, len(records))
	for i, section := range records {
		require.Equal(t, i, section.OrderIndex, "indices must stay dense and ordered")
		titles[i] = section.Title
	}
	return titles
}

func TestCreateSectionAppends(t *testing.T) {
	env := setupEnv(t)

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	created := createSections(t, env, owner.Company.ID, "techcorp", "About Us", "Benefits", "Culture")

	assert.Equal(t, 0, created[0].OrderIndex)
	assert.Equal(t, 1, created[1].OrderIndex)
	assert.Equal(t, 2, created[2].OrderIndex)
	assert.Equal(t, careers.SectionTypeCustom, created[0].SectionType)
	assert.True(t, created[0].IsVisible)

	assert.Equal(t, []string{"About Us", "Benefits", "Culture"}, sectionOrder(t, env, "techcorp"))
}

func TestCreateSectionDefaults(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")

	hidden, err := env.store.CreateSection(ctx, owner.Company.ID, "techcorp", careers.SectionInput{
		Title:     "Secret",
		Content:   "Not yet",
		IsVisible: boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, hidden.IsVisible)

	typed, err := env.store.CreateSection(ctx, owner.Company.ID, "techcorp", careers.SectionInput{
		Title:       "Perks",
		Content:     "Free coffee",
		SectionType: "benefits",
	})
	require.NoError(t, err)
	assert.Equal(t, "benefits", typed.SectionType)
}

func TestSectionOrderingIsPerCompany(t *testing.T) {
	env := setupEnv(t)

	first := registerTenant(t, env, "a@one.com", "One Co")
	second := registerTenant(t, env, "b@two.com", "Two Co")

	createSections(t, env, first.Company.ID, "one-co", "A", "B")
	other := createSections(t, env, second.Company.ID, "two-co", "X")

	// the second company starts from zero, unaffected by the first
	assert.Equal(t, 0, other[0].OrderIndex)
}

func TestReorderSections(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	created := createSections(t, env, owner.Company.ID, "techcorp", "About Us", "Benefits", "Culture")

	t.Run("Full permutation", func(t *testing.T) {
		err := env.store.ReorderSections(ctx, owner.Company.ID, "techcorp", []uuid.UUID{
			created[2].ID, created[0].ID, created[1].ID,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Culture", "About Us", "Benefits"}, sectionOrder(t, env, "techcorp"))
	})

	t.Run("Foreign ids are skipped and order stays dense", func(t *testing.T) {
		err := env.store.ReorderSections(ctx, owner.Company.ID, "techcorp", []uuid.UUID{
			created[1].ID, uuid.New(), created[2].ID, created[0].ID,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Benefits", "Culture", "About Us"}, sectionOrder(t, env, "techcorp"))
	})

	t.Run("Foreign actor is rejected", func(t *testing.T) {
		err := env.store.ReorderSections(ctx, stranger.Company.ID, "techcorp", []uuid.UUID{
			created[0].ID, created[1].ID, created[2].ID,
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Another company's sections never move", func(t *testing.T) {
		foreign := createSections(t, env, stranger.Company.ID, "other-co", "Theirs")

		err := env.store.ReorderSections(ctx, owner.Company.ID, "techcorp", []uuid.UUID{
			foreign[0].ID, created[0].ID, created[1].ID, created[2].ID,
		})
		require.NoError(t, err)

		theirs, err := env.store.Sections(ctx, "other-co")
		require.NoError(t, err)
		require.Len(t, theirs, 1)
		assert.Equal(t, 0, theirs[0].OrderIndex)
	})
}

func TestDeleteSectionCompacts(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	created := createSections(t, env, owner.Company.ID, "techcorp", "About Us", "Benefits", "Culture")

	t.Run("Foreign actor cannot delete", func(t *testing.T) {
		err := env.store.DeleteSection(ctx, stranger.Company.ID, "techcorp", created[1].ID)
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Deleting the middle block closes the gap", func(t *testing.T) {
		err := env.store.DeleteSection(ctx, owner.Company.ID, "techcorp", created[1].ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"About Us", "Culture"}, sectionOrder(t, env, "techcorp"))
	})

	t.Run("Appending after a delete stays dense", func(t *testing.T) {
		section, err := env.store.CreateSection(ctx, owner.Company.ID, "techcorp", careers.SectionInput{
			Title:   "Hiring Process",
			Content: "Four steps",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, section.OrderIndex)
	})
}

func TestUpdateSection(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	owner := registerTenant(t, env, "jane@techcorp.com", "TechCorp")
	stranger := registerTenant(t, env, "mallory@other.com", "Other Co")

	created := createSections(t, env, owner.Company.ID, "techcorp", "About Us", "Benefits")

	t.Run("Partial update keeps order", func(t *testing.T) {
		updated, err := env.store.UpdateSection(ctx, owner.Company.ID, "techcorp", created[1].ID, careers.SectionUpdate{
			Content:   strPtr("Updated benefits copy"),
			IsVisible: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Benefits", updated.Title)
		assert.Equal(t, "Updated benefits copy", updated.Content)
		assert.False(t, updated.IsVisible)
		assert.Equal(t, 1, updated.OrderIndex)
	})

	t.Run("Foreign actor is rejected", func(t *testing.T) {
		_, err := env.store.UpdateSection(ctx, stranger.Company.ID, "techcorp", created[0].ID, careers.SectionUpdate{
			Title: strPtr("Hijacked"),
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})

	t.Run("Unknown section id", func(t *testing.T) {
		_, err := env.store.UpdateSection(ctx, owner.Company.ID, "techcorp", uuid.New(), careers.SectionUpdate{
			Title: strPtr("Ghost"),
		})
		assert.Equal(t, careers.ErrNotAuthorized, err)
	})
}
