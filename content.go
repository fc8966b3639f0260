package homepage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var errNoFrontMatter = errors.New("missing front matter")

// frontMatter is the YAML header of a note file.
type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

// splitFrontMatter separates a leading "---" delimited YAML block from the body.
func splitFrontMatter(src []byte) ([]byte, []byte, error) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(src, []byte("---\n")) {
		return nil, nil, errNoFrontMatter
	}
	rest := src[len("---"):]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, nil, errNoFrontMatter
	}
	fm := rest[:end+1]
	body := rest[end+len("\n---"):]
	// drop the remainder of the closing delimiter line
	if nl := bytes.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = nil
	}
	return fm, body, nil
}

// ParseNote builds a Post from a Markdown file with YAML front matter.
func ParseNote(slug string, src []byte) (Post, error) {
	raw, body, err := splitFrontMatter(src)
	if err != nil {
		return Post{}, err
	}
	var fm frontMatter
	if err := yaml.Unmarshal(raw, &fm); err != nil {
		return Post{}, fmt.Errorf("front matter: %w", err)
	}
	if strings.TrimSpace(fm.Title) == "" {
		return Post{}, errors.New("front matter: title is required")
	}
	if _, err := time.Parse("2006-01-02", fm.Date); err != nil {
		return Post{}, fmt.Errorf("front matter: date %q must be YYYY-MM-DD", fm.Date)
	}

	var tags []string
	for _, t := range fm.Tags {
		if t = normalizeTag(t); t != "" {
			tags = append(tags, t)
		}
	}
	return Post{
		Slug:      slug,
		Title:     strings.TrimSpace(fm.Title),
		Date:      fm.Date,
		Tags:      tags,
		Summary:   strings.TrimSpace(fm.Description),
		Content:   strings.TrimSpace(string(body)),
		Link:      "/blog/" + slug + "/",
		Published: !fm.Draft,
	}, nil
}

// LoadNotes reads every *.md file in dir. The slug is derived from the file
// name. Errors name the offending file.
func LoadNotes(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read notes dir: %w", err)
	}
	seen := make(map[string]string)
	var posts []Post
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		slug := Slugify(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if slug == "" {
			return nil, fmt.Errorf("%s: file name yields an empty slug", e.Name())
		}
		if other, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%s: slug %q already used by %s", e.Name(), slug, other)
		}
		seen[slug] = e.Name()

		src, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		p, err := ParseNote(slug, src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name(), err)
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Date > posts[j].Date })
	return posts, nil
}

// SyncNotes loads the notes in dir and replaces the store contents with them.
// It returns the number of published notes.
func SyncNotes(ctx context.Context, s *Store, dir string) (int, error) {
	posts, err := LoadNotes(dir)
	if err != nil {
		return 0, err
	}
	if err := s.ReplaceAll(ctx, posts); err != nil {
		return 0, fmt.Errorf("replace notes: %w", err)
	}
	published := 0
	for _, p := range posts {
		if p.Published {
			published++
		}
	}
	notesSynced.Set(float64(published))
	return published, nil
}
