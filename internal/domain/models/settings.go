package models

// Profile is the photographer profile shown on the public site.
// Stored as config/profile.json; a missing document yields zero values.
type Profile struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Bio   string `json:"bio"`
	Email string `json:"email"`
}

// SNSLinks holds the social network links. Stored as config/sns.json.
type SNSLinks struct {
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
}

// SiteSettings holds site-wide presentation settings. Stored as
// config/site.json.
type SiteSettings struct {
	SiteTitle   string `json:"site_title"`
	Description string `json:"description"`
	DarkMode    bool   `json:"dark_mode"`
}
