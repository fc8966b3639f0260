// Package views provides the default templ components for the site.
package views

import (
	"github.com/a-h/templ"

	"github.com/josh-nowak/homepage"
	"github.com/josh-nowak/homepage/consts"
)

// Layout wraps body in the document shell: <head> metadata, navigation and
// the footer with social links and the contact address.
func Layout(meta homepage.PageMeta, jsonLD string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(homepage.PageTitle(meta))
		h.raw("</title>")
		h.raw(`<meta name="description"`)
		h.attr("content", meta.Description)
		h.raw(`><meta name="author"`)
		h.attr("content", consts.Site.Name)
		h.raw(">")
		if meta.URL != "" {
			h.raw(`<link rel="canonical"`)
			h.attr("href", meta.URL)
			h.raw(`><meta property="og:url"`)
			h.attr("content", meta.URL)
			h.raw(">")
		}
		h.raw(`<meta property="og:site_name"`)
		h.attr("content", consts.Site.Name)
		h.raw(`><meta property="og:title"`)
		h.attr("content", meta.Title)
		h.raw(`><meta property="og:description"`)
		h.attr("content", meta.Description)
		h.raw(`><meta property="og:type"`)
		h.attr("content", meta.OGType)
		h.raw(">")
		if meta.Image != "" {
			h.raw(`<meta property="og:image"`)
			h.attr("content", meta.Image)
			h.raw(`><meta name="twitter:card" content="summary_large_image">`)
		}
		h.raw(`<link rel="alternate" type="application/rss+xml"`)
		h.attr("title", consts.Blog.Title)
		h.raw(` href="/feed.xml"><link rel="icon" type="image/svg+xml" href="/favicon.svg">`)
		h.raw(`<link rel="stylesheet" href="/public/styles.css">`)
		if jsonLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script tag.
			h.raw(`<script type="application/ld+json">` + jsonLD + `</script>`)
		}
		h.raw("</head><body>")
		h.render(header())
		h.raw(`<main class="container">`)
		h.render(body)
		h.raw("</main>")
		h.render(Footer())
		h.raw("</body></html>")
	})
}

func header() templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<header class="container"><a class="site-name" href="/">`)
		h.text(consts.Site.Name)
		h.raw(`</a><nav><a href="/blog/">`)
		h.text(consts.Blog.Title)
		h.raw(`</a></nav></header>`)
	})
}

// Footer lists the social profiles in order, followed by the contact address.
func Footer() templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<footer class="container"><ul class="socials">`)
		for _, s := range consts.SocialLinks() {
			h.raw("<li><a")
			h.attr("href", s.Href)
			h.attr("aria-label", s.Label()+" profile of "+consts.Site.Name)
			h.raw(` target="_blank" rel="me noopener noreferrer">`)
			h.text(s.Label())
			h.raw("</a></li>")
		}
		h.raw(`</ul><p class="contact"><a`)
		h.attr("href", consts.MailtoHref())
		h.raw(">")
		h.text(consts.Site.Email)
		h.raw("</a></p></footer>")
	})
}
