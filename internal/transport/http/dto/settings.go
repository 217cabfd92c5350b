package dto

// UpdateProfileRequest replaces the stored profile document.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
	Email string `json:"email" validate:"omitempty,email"`
}

// UpdateSNSLinksRequest replaces the stored SNS links document.
type UpdateSNSLinksRequest struct {
	Twitter   string `json:"twitter" validate:"omitempty,url"`
	Instagram string `json:"instagram" validate:"omitempty,url"`
	Facebook  string `json:"facebook" validate:"omitempty,url"`
}

// UpdateSiteSettingsRequest replaces the stored site settings document.
type UpdateSiteSettingsRequest struct {
	SiteTitle   string `json:"site_title"`
	Description string `json:"description"`
	DarkMode    bool   `json:"dark_mode"`
}
