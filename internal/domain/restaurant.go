package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/diagnosis/menupage/internal/utils"
)

const (
	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#ffffff"
	DefaultFontFamily     = "sans-serif"
)

type Theme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
}

func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
		FontFamily:     DefaultFontFamily,
	}
}

// withDefaults fills blank fields from DefaultTheme.
func (t Theme) withDefaults() Theme {
	d := DefaultTheme()
	if strings.TrimSpace(t.PrimaryColor) == "" {
		t.PrimaryColor = d.PrimaryColor
	}
	if strings.TrimSpace(t.SecondaryColor) == "" {
		t.SecondaryColor = d.SecondaryColor
	}
	if strings.TrimSpace(t.FontFamily) == "" {
		t.FontFamily = d.FontFamily
	}
	return t
}

// DayHours is keyed by day name in Restaurant.Hours.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed,omitempty"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

type Restaurant struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	LogoURL       string              `json:"logoUrl,omitempty"`
	CoverImageURL string              `json:"coverImageUrl,omitempty"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email"`
	Website       string              `json:"website,omitempty"`
	Hours         map[string]DayHours `json:"hours"`
	Menu          []MenuItem          `json:"menu"`
	Theme         Theme               `json:"theme"`
	Slug          string              `json:"slug"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// EnsureDefaults repairs records missing a theme, hours or menu, e.g. ones written by hand.
func (r *Restaurant) EnsureDefaults() {
	r.Theme = r.Theme.withDefaults()
	if r.Hours == nil {
		r.Hours = map[string]DayHours{}
	}
	if r.Menu == nil {
		r.Menu = []MenuItem{}
	}
}

type CreateRestaurantRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email"`
	Website       string              `json:"website,omitempty"`
	LogoURL       string              `json:"logoUrl,omitempty"`
	CoverImageURL string              `json:"coverImageUrl,omitempty"`
	Hours         map[string]DayHours `json:"hours,omitempty"`
	Menu          []MenuItem          `json:"menu,omitempty"`
	Theme         *Theme              `json:"theme,omitempty"`
	Slug          string              `json:"slug,omitempty"`
}

// UpdateRestaurantRequest is a partial update. id, userId and createdAt have no field here
// and so can never be changed through it.
type UpdateRestaurantRequest struct {
	Name          *string              `json:"name,omitempty"`
	Description   *string              `json:"description,omitempty"`
	Address       *string              `json:"address,omitempty"`
	Phone         *string              `json:"phone,omitempty"`
	Email         *string              `json:"email,omitempty"`
	Website       *string              `json:"website,omitempty"`
	LogoURL       *string              `json:"logoUrl,omitempty"`
	CoverImageURL *string              `json:"coverImageUrl,omitempty"`
	Hours         *map[string]DayHours `json:"hours,omitempty"`
	Menu          *[]MenuItem          `json:"menu,omitempty"`
	Theme         *Theme               `json:"theme,omitempty"`
	Slug          *string              `json:"slug,omitempty"`
}

func (r *CreateRestaurantRequest) Normalize() {
	r.Name = utils.NormalizeString(r.Name)
	r.Description = utils.NormalizeString(r.Description)
	r.Address = utils.NormalizeString(r.Address)
	r.Phone = utils.NormalizeString(r.Phone)
	r.Email = utils.NormalizeString(r.Email)
	r.Website = utils.NormalizeString(r.Website)
	r.LogoURL = utils.NormalizeString(r.LogoURL)
	r.CoverImageURL = utils.NormalizeString(r.CoverImageURL)

	source := r.Slug
	if strings.TrimSpace(source) == "" {
		source = r.Name
	}
	r.Slug = utils.Slugify(source)

	if r.Hours == nil {
		r.Hours = map[string]DayHours{}
	}
	if r.Menu == nil {
		r.Menu = []MenuItem{}
	}
	theme := DefaultTheme()
	if r.Theme != nil {
		theme = r.Theme.withDefaults()
	}
	r.Theme = &theme
}

// Validate expects Normalize to have run. It assigns ids to menu items that lack one.
func (r *CreateRestaurantRequest) Validate() error {
	if r.Name == "" || r.Description == "" || r.Address == "" || r.Phone == "" || r.Email == "" {
		return BadRequest("Name, description, address, phone, and email are required")
	}
	if !utils.IsUsableSlug(r.Slug) {
		return BadRequest("Slug must contain at least one letter or digit")
	}
	if err := validateHours(r.Hours); err != nil {
		return err
	}
	menu, err := normalizeMenu(r.Menu)
	if err != nil {
		return err
	}
	r.Menu = menu
	return nil
}

// ToRestaurant builds the record to insert. The store assigns id and timestamps.
func (r *CreateRestaurantRequest) ToRestaurant(userID string) Restaurant {
	return Restaurant{
		UserID:        userID,
		Name:          r.Name,
		Description:   r.Description,
		Address:       r.Address,
		Phone:         r.Phone,
		Email:         r.Email,
		Website:       r.Website,
		LogoURL:       r.LogoURL,
		CoverImageURL: r.CoverImageURL,
		Hours:         r.Hours,
		Menu:          r.Menu,
		Theme:         *r.Theme,
		Slug:          r.Slug,
	}
}

func (r *UpdateRestaurantRequest) Normalize() {
	trim := func(p *string) {
		if p != nil {
			*p = utils.NormalizeString(*p)
		}
	}
	trim(r.Name)
	trim(r.Description)
	trim(r.Address)
	trim(r.Phone)
	trim(r.Email)
	trim(r.Website)
	trim(r.LogoURL)
	trim(r.CoverImageURL)
	if r.Theme != nil {
		theme := r.Theme.withDefaults()
		r.Theme = &theme
	}
}

// ResolveSlug runs after Normalize and before Validate. A slug equal to the stored one is
// dropped from the patch, so records whose slug predates slugification keep their URL when
// an edit form echoes it back. Any other slug is slugified.
func (r *UpdateRestaurantRequest) ResolveSlug(current string) {
	if r.Slug == nil {
		return
	}
	if *r.Slug == current || strings.TrimSpace(*r.Slug) == current {
		r.Slug = nil
		return
	}
	slug := utils.Slugify(*r.Slug)
	r.Slug = &slug
}

func (r *UpdateRestaurantRequest) Validate() error {
	required := map[string]*string{
		"name":        r.Name,
		"description": r.Description,
		"address":     r.Address,
		"phone":       r.Phone,
		"email":       r.Email,
	}
	for field, v := range required {
		if v != nil && *v == "" {
			return BadRequest(fmt.Sprintf("%s cannot be empty", field))
		}
	}
	if r.Slug != nil && !utils.IsUsableSlug(*r.Slug) {
		return BadRequest("Slug must contain at least one letter or digit")
	}
	if r.Hours != nil {
		if err := validateHours(*r.Hours); err != nil {
			return err
		}
	}
	if r.Menu != nil {
		menu, err := normalizeMenu(*r.Menu)
		if err != nil {
			return err
		}
		r.Menu = &menu
	}
	return nil
}

// ApplyTo merges the supplied fields onto rest and reports which fields were supplied.
// updatedAt is the caller's job.
func (r *UpdateRestaurantRequest) ApplyTo(rest *Restaurant) []string {
	var changed []string
	set := func(field string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			changed = append(changed, field)
		}
	}
	set("name", &rest.Name, r.Name)
	set("description", &rest.Description, r.Description)
	set("address", &rest.Address, r.Address)
	set("phone", &rest.Phone, r.Phone)
	set("email", &rest.Email, r.Email)
	set("website", &rest.Website, r.Website)
	set("logoUrl", &rest.LogoURL, r.LogoURL)
	set("coverImageUrl", &rest.CoverImageURL, r.CoverImageURL)
	set("slug", &rest.Slug, r.Slug)
	if r.Hours != nil {
		rest.Hours = *r.Hours
		changed = append(changed, "hours")
	}
	if r.Menu != nil {
		rest.Menu = *r.Menu
		changed = append(changed, "menu")
	}
	if r.Theme != nil {
		rest.Theme = *r.Theme
		changed = append(changed, "theme")
	}
	rest.EnsureDefaults()
	return changed
}

func validateHours(hours map[string]DayHours) error {
	for day := range hours {
		if strings.TrimSpace(day) == "" {
			return BadRequest("Hours keys must name a day")
		}
	}
	return nil
}

// normalizeMenu returns a copy of items with names trimmed and missing ids filled in.
func normalizeMenu(items []MenuItem) ([]MenuItem, error) {
	out := make([]MenuItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, BadRequest(fmt.Sprintf("Menu item %d: name is required", i+1))
		}
		if item.Price < 0 {
			return nil, BadRequest(fmt.Sprintf("Menu item %q: price cannot be negative", item.Name))
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if _, dup := seen[item.ID]; dup {
			return nil, BadRequest(fmt.Sprintf("Menu item id %q is duplicated", item.ID))
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out, nil
}
