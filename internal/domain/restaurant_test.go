package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() *CreateRestaurantRequest {
	return &CreateRestaurantRequest{
		Name:        "Joe's",
		Description: "d",
		Address:     "1 Main St",
		Phone:       "555",
		Email:       "a@x.com",
	}
}

func TestCreateRestaurantDefaults(t *testing.T) {
	req := validCreate()
	req.Normalize()
	require.NoError(t, req.Validate())

	assert.Equal(t, "joes", req.Slug)
	assert.Equal(t, DefaultTheme(), *req.Theme)
	assert.NotNil(t, req.Hours)
	assert.NotNil(t, req.Menu)

	rest := req.ToRestaurant("owner-1")
	assert.Equal(t, "owner-1", rest.UserID)
	assert.Equal(t, "joes", rest.Slug)
}

func TestCreateRestaurantExplicitSlugIsSlugified(t *testing.T) {
	req := validCreate()
	req.Slug = "My Place!"
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "my-place", req.Slug)
}

func TestCreateRestaurantPartialTheme(t *testing.T) {
	req := validCreate()
	req.Theme = &Theme{PrimaryColor: "#ff0000"}
	req.Normalize()

	assert.Equal(t, Theme{PrimaryColor: "#ff0000", SecondaryColor: DefaultSecondaryColor, FontFamily: DefaultFontFamily}, *req.Theme)
}

func TestCreateRestaurantValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateRestaurantRequest)
	}{
		{"missing name", func(r *CreateRestaurantRequest) { r.Name = "   " }},
		{"missing description", func(r *CreateRestaurantRequest) { r.Description = "" }},
		{"missing address", func(r *CreateRestaurantRequest) { r.Address = "" }},
		{"missing phone", func(r *CreateRestaurantRequest) { r.Phone = "" }},
		{"missing email", func(r *CreateRestaurantRequest) { r.Email = "" }},
		{"slug with no usable characters", func(r *CreateRestaurantRequest) { r.Name = "!!!" }},
		{"name that slugifies to a hyphen", func(r *CreateRestaurantRequest) { r.Name = "& &" }},
		{"explicit slug of hyphens", func(r *CreateRestaurantRequest) { r.Slug = "--" }},
		{"negative price", func(r *CreateRestaurantRequest) {
			r.Menu = []MenuItem{{Name: "Soup", Price: -1}}
		}},
		{"unnamed menu item", func(r *CreateRestaurantRequest) {
			r.Menu = []MenuItem{{Name: " ", Price: 3}}
		}},
		{"duplicate menu ids", func(r *CreateRestaurantRequest) {
			r.Menu = []MenuItem{{ID: "m1", Name: "A"}, {ID: "m1", Name: "B"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(req)
			req.Normalize()
			err := req.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadRequest))
		})
	}
}

func TestMenuItemsGetIDs(t *testing.T) {
	req := validCreate()
	req.Menu = []MenuItem{{Name: "Soup", Price: 4.5}, {ID: "keep", Name: "Bread", Price: 0}}
	req.Normalize()
	require.NoError(t, req.Validate())

	require.Len(t, req.Menu, 2)
	assert.NotEmpty(t, req.Menu[0].ID)
	assert.Equal(t, "keep", req.Menu[1].ID)
}

func TestUpdateApplyTo(t *testing.T) {
	rest := &Restaurant{
		ID:     "r1",
		UserID: "owner-1",
		Name:   "Old",
		Slug:   "old",
		Theme:  DefaultTheme(),
	}
	name := " New Name "
	slug := "New Slug"
	req := &UpdateRestaurantRequest{Name: &name, Slug: &slug, Theme: &Theme{FontFamily: "serif"}}
	req.Normalize()
	req.ResolveSlug(rest.Slug)
	require.NoError(t, req.Validate())

	changed := req.ApplyTo(rest)

	assert.ElementsMatch(t, []string{"name", "slug", "theme"}, changed)
	assert.Equal(t, "New Name", rest.Name)
	assert.Equal(t, "new-slug", rest.Slug)
	assert.Equal(t, "serif", rest.Theme.FontFamily)
	assert.Equal(t, DefaultPrimaryColor, rest.Theme.PrimaryColor)
	assert.Equal(t, "r1", rest.ID)
	assert.Equal(t, "owner-1", rest.UserID)
	assert.NotNil(t, rest.Hours)
	assert.NotNil(t, rest.Menu)
}

func TestResolveSlugKeepsStoredSlug(t *testing.T) {
	stored := "My Legacy Slug"

	echoed := stored
	req := &UpdateRestaurantRequest{Slug: &echoed}
	req.Normalize()
	req.ResolveSlug(stored)
	require.NoError(t, req.Validate())
	assert.Nil(t, req.Slug)

	rest := &Restaurant{Slug: stored, Theme: DefaultTheme()}
	assert.Empty(t, req.ApplyTo(rest))
	assert.Equal(t, stored, rest.Slug)

	other := "My Other Slug"
	req = &UpdateRestaurantRequest{Slug: &other}
	req.Normalize()
	req.ResolveSlug(stored)
	require.NoError(t, req.Validate())
	require.NotNil(t, req.Slug)
	assert.Equal(t, "my-other-slug", *req.Slug)
}

func TestUpdateRejectsUnusableSlug(t *testing.T) {
	for _, raw := range []string{"-", "--", " & ", "!!!"} {
		slug := raw
		req := &UpdateRestaurantRequest{Slug: &slug}
		req.Normalize()
		req.ResolveSlug("joes")
		assert.ErrorIs(t, req.Validate(), ErrBadRequest, raw)
	}
}

func TestUpdateRejectsBlankRequired(t *testing.T) {
	blank := ""
	req := &UpdateRestaurantRequest{Phone: &blank}
	req.Normalize()
	assert.ErrorIs(t, req.Validate(), ErrBadRequest)
}

func TestRegisterValidation(t *testing.T) {
	req := &RegisterRequest{Email: " A@x.com ", Password: "pw", Name: " A "}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "A@x.com", req.Email)
	assert.Equal(t, "A", req.Name)

	assert.ErrorIs(t, (&RegisterRequest{Email: "a@x.com"}).Validate(), ErrBadRequest)
	assert.NoError(t, (&RegisterRequest{Email: "owner@localhost", Password: "p", Name: "n"}).Validate())
}
