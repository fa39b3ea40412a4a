// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SocialLink is one entry of the site settings social link list.
type SocialLink struct {
	Label    string `json:"label,omitempty"`
	Platform string `json:"platform,omitempty"` // "facebook", "instagram", "twitter"
	URL      string `json:"url,omitempty"`
	Enabled  *bool  `json:"enabled,omitempty"` // nil means enabled
}

// IsEnabled reports whether the link should be shown.
func (l SocialLink) IsEnabled() bool {
	return l.Enabled == nil || *l.Enabled
}

// SiteSettings is the singleton document that drives the header and footer.
// Any field may be missing in the stored document.
type SiteSettings struct {
	Title        string       `json:"title,omitempty"`
	Tagline      string       `json:"tagline,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Address      string       `json:"address,omitempty"`
	Hours        string       `json:"hours,omitempty"`
	ServiceAreas []string     `json:"serviceAreas,omitempty"`
	ShowSocials  *bool        `json:"showSocials,omitempty"`
	SocialLinks  []SocialLink `json:"socialLinks,omitempty"`
}

// WithDefaults fills every missing field of s from fb, field by field, so a
// partially edited document still supplies what the editor did set.
// An explicitly empty social link list is kept; only an absent one falls back.
func (s *SiteSettings) WithDefaults(fb *SiteSettings) *SiteSettings {
	if s == nil {
		return fb
	}
	if fb == nil {
		return s
	}
	out := *s
	out.Title = orString(s.Title, fb.Title)
	out.Tagline = orString(s.Tagline, fb.Tagline)
	out.Phone = orString(s.Phone, fb.Phone)
	out.Email = orString(s.Email, fb.Email)
	out.Address = orString(s.Address, fb.Address)
	out.Hours = orString(s.Hours, fb.Hours)
	if len(s.ServiceAreas) == 0 {
		out.ServiceAreas = fb.ServiceAreas
	}
	if s.ShowSocials == nil {
		out.ShowSocials = fb.ShowSocials
	}
	if s.SocialLinks == nil {
		out.SocialLinks = fb.SocialLinks
	}
	return &out
}

// SocialsVisible reports whether the social icon row is switched on.
func (s *SiteSettings) SocialsVisible() bool {
	return s != nil && s.ShowSocials != nil && *s.ShowSocials
}

// VisibleSocialLinks returns the enabled links that have a URL, or nothing
// when socials are switched off.
func (s *SiteSettings) VisibleSocialLinks() []SocialLink {
	if !s.SocialsVisible() {
		return nil
	}
	var links []SocialLink
	for _, l := range s.SocialLinks {
		if l.IsEnabled() && l.URL != "" {
			links = append(links, l)
		}
	}
	return links
}

// TelHref returns a tel: link built from the digits of the phone number.
func (s *SiteSettings) TelHref() string {
	if s == nil {
		return ""
	}
	digits := make([]rune, 0, len(s.Phone))
	for _, r := range s.Phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) == 0 {
		return ""
	}
	if len(digits) == 10 {
		return "tel:1" + string(digits)
	}
	return "tel:" + string(digits)
}

func orString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
