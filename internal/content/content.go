// Package content is the filesystem-backed document store for published
// posts. Documents are markdown files with YAML front matter, organized as
// <dir>/<category>/<name>.md; the engagement slug for a document is
// "<category>/<name>". Rendering is the client's concern: bodies are served
// as raw markdown.
package content

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no document exists for a category/slug pair.
var ErrNotFound = errors.New("content: document not found")

// Metadata is the YAML front matter of one document.
type Metadata struct {
	Title  string   `yaml:"title" json:"title"`
	Date   string   `yaml:"date,omitempty" json:"date,omitempty"`     // YYYY-MM-DD, used for ordering
	Period string   `yaml:"period,omitempty" json:"period,omitempty"` // fuzzy display time
	Tags   []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Post is one published document.
type Post struct {
	Slug     string   `json:"slug"` // category/name
	Category string   `json:"category"`
	Metadata Metadata `json:"metadata"`
	Body     string   `json:"body,omitempty"` // empty in listings
}

// Store lists and fetches documents under a root directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Categories returns the content categories (subdirectories) that exist.
func (s *Store) Categories() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var categories []string
	for _, e := range entries {
		if e.IsDir() {
			categories = append(categories, e.Name())
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// List returns front matter for every document in a category, newest first.
// Bodies are not loaded.
func (s *Store) List(category string) ([]Post, error) {
	dirPath := filepath.Join(s.dir, filepath.Clean("/"+category))

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var posts []Post
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isMarkdown(name) {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dirPath, name))
		if err != nil {
			return nil, err
		}

		meta, _, err := splitFrontMatter(raw)
		if err != nil {
			return nil, err
		}

		base := trimMarkdownExt(name)
		posts = append(posts, Post{
			Slug:     category + "/" + base,
			Category: category,
			Metadata: meta,
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Metadata.Date > posts[j].Metadata.Date
	})

	return posts, nil
}

// Get returns a single document including its body, or ErrNotFound.
func (s *Store) Get(category, name string) (*Post, error) {
	dirPath := filepath.Join(s.dir, filepath.Clean("/"+category))
	base := filepath.Clean("/" + name)

	var raw []byte
	var err error
	for _, ext := range []string{".mdx", ".md"} {
		raw, err = os.ReadFile(filepath.Join(dirPath, base+ext))
		if err == nil {
			break
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}

	return &Post{
		Slug:     category + "/" + name,
		Category: category,
		Metadata: meta,
		Body:     body,
	}, nil
}

const frontMatterFence = "---"

// splitFrontMatter separates the leading YAML front matter block from the
// markdown body. A document without front matter is all body.
func splitFrontMatter(raw []byte) (Metadata, string, error) {
	var meta Metadata

	text := string(bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n")))
	if !strings.HasPrefix(text, frontMatterFence+"\n") {
		return meta, text, nil
	}

	rest := text[len(frontMatterFence)+1:]
	end := strings.Index(rest, "\n"+frontMatterFence)
	if end < 0 {
		return meta, text, nil
	}

	if err := yaml.Unmarshal([]byte(rest[:end]), &meta); err != nil {
		return meta, "", err
	}

	body := rest[end+len(frontMatterFence)+1:]
	body = strings.TrimPrefix(body, "\n")
	return meta, body, nil
}

func isMarkdown(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".mdx")
}

func trimMarkdownExt(name string) string {
	name = strings.TrimSuffix(name, ".mdx")
	return strings.TrimSuffix(name, ".md")
}
