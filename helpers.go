package homepage

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/josh-nowak/homepage/consts"
)

// Slugify converts a title or file name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments. Page paths get a trailing
// slash; paths ending in a file extension do not.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") && path.Ext(u.Path) == "" {
		u.Path += "/"
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// FilterRelatedPosts finds posts that share at least one tag with current.
func FilterRelatedPosts(current Post, posts []Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		if tag := normalizeTag(t); tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

func person() map[string]any {
	return map[string]any{
		"@type": "Person",
		"name":  consts.Site.Name,
	}
}

// PersonJsonLD returns a schema.org Person block for the site owner, linking
// every social profile through sameAs.
func PersonJsonLD(base string) string {
	links := consts.SocialLinks()
	sameAs := make([]string, 0, len(links))
	for _, s := range links {
		sameAs = append(sameAs, s.Href)
	}
	data := person()
	data["@context"] = "https://schema.org"
	data["email"] = consts.MailtoHref()
	data["url"] = BuildURL(base)
	data["description"] = consts.Home.Description
	data["sameAs"] = sameAs
	return marshalJsonLD(data)
}

// BlogPostingJsonLD returns a schema.org BlogPosting block for a note.
func BlogPostingJsonLD(base string, post Post) string {
	postURL := BuildURL(base, "blog", post.Slug)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"author":        person(),
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if len(post.Tags) > 0 {
		data["keywords"] = JoinTags(post.Tags)
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]any) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
