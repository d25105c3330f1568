package careers_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	careers "github.com/hirepage/careers"
)

func TestRegisterProvisionsTenant(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	result := registerTenant(t, env, "jane@techcorp.com", "TechCorp Solutions")

	assert.Equal(t, "techcorp-solutions", result.Company.Slug)
	assert.Equal(t, "TechCorp Solutions", result.Company.Name)
	assert.Equal(t, "jane@techcorp.com", result.Account.Email)
	assert.Equal(t, result.Company.ID, result.Account.CompanyID)

	// the issued token resolves back to the new account
	claims, err := env.tokens.Validate(result.Token)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, result.Account.ID, userID)

	// registration seeds the default theme
	theme, err := env.store.ThemeBySlug(ctx, "techcorp-solutions")
	require.NoError(t, err)
	assert.Equal(t, careers.DefaultPrimaryColor, theme.PrimaryColor)
	assert.Equal(t, careers.DefaultSecondaryColor, theme.SecondaryColor)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	registerTenant(t, env, "jane@techcorp.com", "TechCorp")

	_, err := env.auther.Register(ctx, careers.RegisterInput{
		Email:       "jane@techcorp.com",
		Password:    "password123",
		CompanyName: "Other Co",
		FullName:    "Jane Again",
	})
	require.Error(t, err)
	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	assert.Equal(t, "Email already registered", rich.Message)

	// the failed registration must not leave a company behind
	_, err = env.store.CompanyProfile(ctx, "other-co")
	assert.Error(t, err)
}

func TestRegisterDuplicateCompanyName(t *testing.T) {
	env := setupEnv(t)

	first := registerTenant(t, env, "a@acme.com", "Acme")
	second := registerTenant(t, env, "b@acme.com", "Acme")

	assert.Equal(t, "acme", first.Company.Slug)
	assert.True(t, strings.HasPrefix(second.Company.Slug, "acme-"))
	assert.NotEqual(t, first.Company.Slug, second.Company.Slug)
}

func TestLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	registerTenant(t, env, "jane@techcorp.com", "TechCorp")

	t.Run("Valid credentials", func(t *testing.T) {
		result, err := env.auther.Login(ctx, "jane@techcorp.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "jane@techcorp.com", result.Account.Email)
		require.NotNil(t, result.Company)
		assert.Equal(t, "techcorp", result.Company.Slug)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := env.auther.Login(ctx, "jane@techcorp.com", "wrong-password")
		require.Error(t, err)
		var rich *goerrors.Error
		require.ErrorAs(t, err, &rich)
		assert.Equal(t, "Invalid email or password", rich.Message)
	})

	t.Run("Unknown email", func(t *testing.T) {
		_, err := env.auther.Login(ctx, "nobody@techcorp.com", "password123")
		require.Error(t, err)
		// indistinguishable from a wrong password
		var rich *goerrors.Error
		require.ErrorAs(t, err, &rich)
		assert.Equal(t, "Invalid email or password", rich.Message)
	})
}

func TestMe(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	result := registerTenant(t, env, "jane@techcorp.com", "TechCorp")

	account, err := env.auther.Me(ctx, result.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@techcorp.com", account.Email)
	require.NotNil(t, account.Company)
	assert.Equal(t, "techcorp", account.Company.Slug)

	raw, err := json.Marshal(account)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password_hash", "hash must never serialize")
}
