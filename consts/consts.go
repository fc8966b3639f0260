// Package consts holds the site-wide identity, per-page metadata, and social
// links that templates read when rendering. Values are fixed at compile time
// and must not be modified at runtime.
package consts

import (
	"unicode"
	"unicode/utf8"
)

// SiteInfo identifies the site owner.
type SiteInfo struct {
	Name               string `json:"name" yaml:"name"`
	Email              string `json:"email" yaml:"email"`
	NumPostsOnHomepage int    `json:"numPostsOnHomepage" yaml:"numPostsOnHomepage"`
}

// Metadata is the title/description pair for a page, used for display and
// SEO tags.
type Metadata struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

// Social is an outbound link to a social-media profile.
type Social struct {
	Name string `json:"name" yaml:"name"` // "linkedin", "github", "bluesky", ...
	Href string `json:"href" yaml:"href"`
}

var Site = SiteInfo{
	Name:               "Joshua Nowak",
	Email:              "hello@joshuanowak.eu",
	NumPostsOnHomepage: 5,
}

var Home = Metadata{
	Title:       "Home",
	Description: "Joshua Nowak - Bridging psychology and product",
}

var Blog = Metadata{
	Title:       "Notes & Highlights",
	Description: "A collection of notes and highlights from my work.",
}

// Socials is rendered in this order.
var Socials = []Social{
	{
		Name: "linkedin",
		Href: "https://www.linkedin.com/in/nowakjoshua",
	},
	{
		Name: "github",
		Href: "https://github.com/josh-nowak",
	},
	{
		Name: "bluesky",
		Href: "https://bsky.app/profile/joshuanowak.eu",
	},
}

// SocialLinks returns a copy of Socials that callers may reorder or append to.
func SocialLinks() []Social {
	out := make([]Social, len(Socials))
	copy(out, Socials)
	return out
}

// MailtoHref returns the contact address as a mailto: link.
func MailtoHref() string {
	return "mailto:" + Site.Email
}

var socialLabels = map[string]string{
	"linkedin": "LinkedIn",
	"github":   "GitHub",
	"bluesky":  "Bluesky",
}

// Label returns the display name for the platform.
func (s Social) Label() string {
	if l, ok := socialLabels[s.Name]; ok {
		return l
	}
	r, size := utf8.DecodeRuneInString(s.Name)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + s.Name[size:]
}
