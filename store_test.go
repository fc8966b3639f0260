package homepage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPosts() []Post {
	return []Post{
		{Slug: "older", Title: "Older", Date: "2024-01-01", Tags: []string{"Research"}, Summary: "s", Content: "c", Published: true},
		{Slug: "newer", Title: "Newer", Date: "2024-06-01", Tags: []string{"product", "research"}, Summary: "s", Content: "c", Published: true},
		{Slug: "draft", Title: "Draft", Date: "2024-07-01", Tags: []string{"secret"}, Published: false},
	}
}

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := Post{
		Slug:      "test-post",
		Title:     "Test Post",
		Date:      "2024-01-15",
		Tags:      []string{"Go", " testing "},
		Summary:   "A test post summary",
		Content:   "# Test Content\n\nThis is test content.",
		Published: true,
	}
	require.NoError(t, s.SavePost(post))

	got, err := s.GetPost("test-post")
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Date, got.Date)
	assert.Equal(t, post.Summary, got.Summary)
	assert.Equal(t, post.Content, got.Content)
	assert.Equal(t, "/blog/test-post/", got.Link)
	assert.True(t, got.Published)
	assert.Equal(t, []string{"go", "testing"}, got.Tags)
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range testPosts() {
		require.NoError(t, s.SavePost(p))
	}

	_, err := s.GetPost("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetPost("draft")
	assert.ErrorIs(t, err, ErrNotFound, "drafts are not served")
}

func TestListPostsAndTags(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range testPosts() {
		require.NoError(t, s.SavePost(p))
	}

	posts, err := s.ListPosts("")
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	assert.Equal(t, "older", posts[1].Slug)

	posts, err = s.ListPosts(" PRODUCT ")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "newer", posts[0].Slug)

	tags, err := s.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "research"}, tags)
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(testPosts()[0]))
	require.NoError(t, s.DeletePost("older"))

	_, err := s.GetPost("older")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceAll(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.SavePost(Post{Slug: "stale", Title: "Stale", Date: "2023-01-01", Published: true}))

	require.NoError(t, s.ReplaceAll(context.Background(), testPosts()))

	_, err := s.GetPost("stale")
	assert.ErrorIs(t, err, ErrNotFound)
	posts, err := s.ListPosts("")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(""))
	assert.Nil(t, ParseTags(",,"))
	assert.Equal(t, []string{"go", "web"}, ParseTags(",go,web,"))
}

func TestPostCacheRecent(t *testing.T) {
	s := setupTestStore(t)
	for i, date := range []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01", "2024-05-01", "2024-06-01", "2024-07-01"} {
		require.NoError(t, s.SavePost(Post{
			Slug:      Slugify(date),
			Title:     date,
			Date:      date,
			Tags:      []string{"n" + string(rune('a'+i))},
			Published: true,
		}))
	}
	c := NewPostCache(s, time.Minute)

	recent, err := c.Recent(5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	assert.Equal(t, "2024-07-01", recent[0].Date)
	assert.Equal(t, "2024-03-01", recent[4].Date)

	all, err := c.Recent(100)
	require.NoError(t, err)
	assert.Len(t, all, 7)

	none, err := c.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostCacheInvalidate(t *testing.T) {
	s := setupTestStore(t)
	c := NewPostCache(s, time.Hour)

	posts, err := c.ListPosts("")
	require.NoError(t, err)
	assert.Empty(t, posts)

	require.NoError(t, s.SavePost(testPosts()[0]))
	posts, err = c.ListPosts("")
	require.NoError(t, err)
	assert.Empty(t, posts, "cached result served until invalidated")

	c.Invalidate()
	posts, err = c.ListPosts("research")
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	_, err = c.GetPost("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostCacheIndexes(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range testPosts() {
		require.NoError(t, s.SavePost(p))
	}
	c := NewPostCache(s, time.Minute)

	research, err := c.ListPosts(" Research ")
	require.NoError(t, err)
	require.Len(t, research, 2)
	assert.Equal(t, "newer", research[0].Slug)
	assert.Equal(t, "older", research[1].Slug)

	secret, err := c.ListPosts("secret")
	require.NoError(t, err)
	assert.Empty(t, secret, "drafts are not indexed")

	got, err := c.GetPost("older")
	require.NoError(t, err)
	assert.Equal(t, "Older", got.Title)

	_, err = c.GetPost("draft")
	assert.ErrorIs(t, err, ErrNotFound)

	tags, err := c.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"product", "research"}, tags)
}
