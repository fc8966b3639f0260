package homepage

import (
	"net/url"

	"github.com/josh-nowak/homepage/consts"
)

// Post is a note loaded from Markdown, stored in SQLite, and rendered by
// templates.
type Post struct {
	Title     string
	Date      string // YYYY-MM-DD
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Published bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, absolute
}

// HomeMeta builds the homepage metadata from consts.Home.
func HomeMeta(base string) PageMeta {
	return PageMeta{
		Title:       consts.Home.Title,
		Description: consts.Home.Description,
		URL:         BuildURL(base),
		OGType:      "website",
		Image:       BuildURL(base, "og", "home.png"),
	}
}

// BlogMeta builds the notes index metadata from consts.Blog.
func BlogMeta(base string) PageMeta {
	return PageMeta{
		Title:       consts.Blog.Title,
		Description: consts.Blog.Description,
		URL:         BuildURL(base, "blog"),
		OGType:      "website",
		Image:       BuildURL(base, "og", "blog.png"),
	}
}

// PostMeta builds metadata for a single note. Notes without a summary fall
// back to the blog description.
func PostMeta(base string, p Post) PageMeta {
	desc := p.Summary
	if desc == "" {
		desc = consts.Blog.Description
	}
	return PageMeta{
		Title:       p.Title,
		Description: desc,
		URL:         BuildURL(base, "blog", p.Slug),
		OGType:      "article",
		Image:       BuildURL(base, "og", "blog.png"),
	}
}

// PageTitle formats the <title> text. The homepage, recognised by its
// canonical URL, shows only the site name.
func PageTitle(m PageMeta) string {
	if m.Title == "" || isRootURL(m.URL) {
		return consts.Site.Name
	}
	return m.Title + " | " + consts.Site.Name
}

func isRootURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Path == "" || u.Path == "/"
}
