package homepage

import (
	"database/sql"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = sql.ErrNoRows

// noteIndex is one load of the published notes, indexed for the page
// handlers. It is never modified after it is built.
type noteIndex struct {
	posts  []Post // newest first
	tags   []string
	bySlug map[string]int
	byTag  map[string][]Post
	built  time.Time
}

func buildNoteIndex(posts []Post, tags []string) *noteIndex {
	idx := &noteIndex{
		posts:  posts,
		tags:   tags,
		bySlug: make(map[string]int, len(posts)),
		byTag:  make(map[string][]Post),
		built:  time.Now(),
	}
	for i, p := range posts {
		idx.bySlug[p.Slug] = i
		seen := make(map[string]bool, len(p.Tags))
		for _, t := range p.Tags {
			tag := normalizeTag(t)
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			idx.byTag[tag] = append(idx.byTag[tag], p)
		}
	}
	return idx
}

// PostCache keeps the published notes in memory for ttl. The content
// watcher calls Invalidate after each successful sync.
type PostCache struct {
	mu    sync.RWMutex
	idx   *noteIndex
	ttl   time.Duration
	store *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

// Invalidate drops the current index so the next read reloads from the store.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.idx = nil
	c.mu.Unlock()
}

func (c *PostCache) fresh() *noteIndex {
	if c.idx != nil && time.Since(c.idx.built) < c.ttl {
		return c.idx
	}
	return nil
}

func (c *PostCache) index() (*noteIndex, error) {
	c.mu.RLock()
	idx := c.fresh()
	c.mu.RUnlock()
	if idx != nil {
		return idx, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.fresh(); idx != nil {
		return idx, nil
	}
	posts, err := c.store.ListPosts("")
	if err != nil {
		return nil, err
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []Post{}
	}
	c.idx = buildNoteIndex(posts, tags)
	return c.idx, nil
}

// ListPosts returns published posts, optionally filtered by tag.
func (c *PostCache) ListPosts(tag string) ([]Post, error) {
	idx, err := c.index()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return idx.posts, nil
	}
	return idx.byTag[normalizeTag(tag)], nil
}

// Recent returns at most n of the newest published posts. The homepage asks
// for consts.Site.NumPostsOnHomepage.
func (c *PostCache) Recent(n int) ([]Post, error) {
	idx, err := c.index()
	if err != nil {
		return nil, err
	}
	n = max(n, 0)
	return idx.posts[:min(n, len(idx.posts))], nil
}

// ListTags returns all unique tags from published posts.
func (c *PostCache) ListTags() ([]string, error) {
	idx, err := c.index()
	if err != nil {
		return nil, err
	}
	return idx.tags, nil
}

// GetPost returns a single published post by slug.
func (c *PostCache) GetPost(slug string) (Post, error) {
	idx, err := c.index()
	if err != nil {
		return Post{}, err
	}
	i, ok := idx.bySlug[slug]
	if !ok {
		return Post{}, ErrNotFound
	}
	return idx.posts[i], nil
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
