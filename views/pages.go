package views

import (
	"net/url"

	"github.com/a-h/templ"

	"github.com/josh-nowak/homepage"
	"github.com/josh-nowak/homepage/consts"
	"github.com/josh-nowak/homepage/markdown"
)

// Default returns the built-in page components.
func Default() homepage.ViewFuncs {
	return homepage.ViewFuncs{
		Home:        Home,
		Blog:        Blog,
		Post:        Post,
		NotFound:    NotFound,
		ServerError: ServerError,
	}
}

func postList(posts []homepage.Post) templ.Component {
	return component(func(h *htmlWriter) {
		if len(posts) == 0 {
			h.raw(`<p class="empty">No notes yet.</p>`)
			return
		}
		h.raw(`<ul class="posts">`)
		for _, p := range posts {
			h.raw("<li><a")
			h.attr("href", p.Link)
			h.raw(">")
			h.text(p.Title)
			h.raw("</a> <time")
			h.attr("datetime", p.Date)
			h.raw(">")
			h.text(FormatDate(p.Date))
			h.raw("</time>")
			if p.Summary != "" {
				h.raw("<p>")
				h.text(p.Summary)
				h.raw("</p>")
			}
			h.raw("</li>")
		}
		h.raw("</ul>")
	})
}

func tagLink(tag string, active bool) templ.Component {
	return component(func(h *htmlWriter) {
		class := "tag"
		if active {
			class += " active"
		}
		h.raw("<a")
		h.attr("class", class)
		h.attr("href", "/blog/?tag="+url.QueryEscape(tag))
		h.raw(">")
		h.text(tag)
		h.raw("</a>")
	})
}

// Home shows the introduction, the most recent notes and contact details.
func Home(meta homepage.PageMeta, recent []homepage.Post, siteURL string) templ.Component {
	body := component(func(h *htmlWriter) {
		h.raw(`<section class="intro"><h1>`)
		h.text(consts.Site.Name)
		h.raw("</h1><p>")
		h.text(meta.Description)
		h.raw(`</p></section><section class="recent"><h2>Latest notes</h2>`)
		h.render(postList(recent))
		h.raw(`<a class="more" href="/blog/">All `)
		h.text(consts.Blog.Title)
		h.raw(` &rarr;</a></section><section class="connect"><h2>Connect</h2><p>Reach me at <a`)
		h.attr("href", consts.MailtoHref())
		h.raw(">")
		h.text(consts.Site.Email)
		h.raw("</a>.</p></section>")
	})
	return Layout(meta, homepage.PersonJsonLD(siteURL), body)
}

// Blog lists every note, optionally filtered by activeTag.
func Blog(meta homepage.PageMeta, posts []homepage.Post, activeTag string, tags []string) templ.Component {
	body := component(func(h *htmlWriter) {
		h.raw("<h1>")
		h.text(meta.Title)
		h.raw("</h1><p>")
		h.text(meta.Description)
		h.raw("</p>")
		if len(tags) > 0 {
			h.raw(`<nav class="tags"><a class="tag`)
			if activeTag == "" {
				h.raw(" active")
			}
			h.raw(`" href="/blog/">all</a>`)
			for _, t := range tags {
				h.render(tagLink(t, t == activeTag))
			}
			h.raw("</nav>")
		}
		h.render(postList(posts))
	})
	return Layout(meta, "", body)
}

// Post renders a single note with its related notes.
func Post(meta homepage.PageMeta, post homepage.Post, related []homepage.Post, siteURL string) templ.Component {
	body := component(func(h *htmlWriter) {
		h.raw(`<article><header><h1>`)
		h.text(post.Title)
		h.raw("</h1><time")
		h.attr("datetime", post.Date)
		h.raw(">")
		h.text(FormatDate(post.Date))
		h.raw("</time>")
		if len(post.Tags) > 0 {
			h.raw(`<div class="tags">`)
			for _, t := range post.Tags {
				h.render(tagLink(t, false))
			}
			h.raw("</div>")
		}
		h.raw(`</header><div class="prose">`)
		h.render(markdown.Markdown(post.Content))
		h.raw("</div></article>")
		if len(related) > 0 {
			h.raw(`<aside class="related"><h2>Related notes</h2>`)
			h.render(postList(related))
			h.raw("</aside>")
		}
	})
	return Layout(meta, homepage.BlogPostingJsonLD(siteURL, post), body)
}

// NotFound is rendered for unknown routes and notes.
func NotFound() templ.Component {
	meta := homepage.PageMeta{Title: "Not found", Description: consts.Home.Description, OGType: "website"}
	return Layout(meta, "", component(func(h *htmlWriter) {
		h.raw(`<h1>Page not found</h1><p>Try the <a href="/blog/">`)
		h.text(consts.Blog.Title)
		h.raw("</a> instead.</p>")
	}))
}

// ServerError is rendered for 5xx responses.
func ServerError() templ.Component {
	meta := homepage.PageMeta{Title: "Something went wrong", Description: consts.Home.Description, OGType: "website"}
	return Layout(meta, "", component(func(h *htmlWriter) {
		h.raw("<h1>Something went wrong</h1><p>Please try again later, or write to <a")
		h.attr("href", consts.MailtoHref())
		h.raw(">")
		h.text(consts.Site.Email)
		h.raw("</a>.</p>")
	}))
}
