package domain

import (
	"fmt"
	"strings"
	"time"
)

// Content represents a generated article
type Content struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      Kind      `json:"kind"`
	Status    Status    `json:"status"`
	Words     int       `json:"words"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status represents content status
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// String returns the display string
func (s Status) String() string {
	return string(s)
}

// Kind is the type of generated content
type Kind string

const (
	KindArticle Kind = "article"
	KindStory   Kind = "story"
	KindPoem    Kind = "poem"
	KindEssay   Kind = "essay"
)

// Short returns single character representation
func (k Kind) Short() string {
	switch k {
	case KindArticle:
		return "A"
	case KindStory:
		return "S"
	case KindPoem:
		return "P"
	case KindEssay:
		return "E"
	default:
		return "?"
	}
}

// String returns the display string
func (k Kind) String() string {
	return string(k)
}

// Rename returns a copy of c with a new title. Surrounding whitespace is
// dropped; an empty title is rejected.
func (c Content) Rename(title string, now time.Time) (Content, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return c, fmt.Errorf("rename %s: %w", c.ID, ErrEmptyTitle)
	}
	c.Title = title
	c.UpdatedAt = now
	return c, nil
}

// Library is an ordered list of content items
type Library []Content

// Index returns the position of id, or -1.
func (l Library) Index(id string) int {
	for i, c := range l {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Remove returns the library without id.
func (l Library) Remove(id string) Library {
	i := l.Index(id)
	if i < 0 {
		return l
	}
	out := make(Library, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}

// Replace swaps in c for the item with the same ID.
func (l Library) Replace(c Content) Library {
	i := l.Index(c.ID)
	if i < 0 {
		return l
	}
	out := make(Library, len(l))
	copy(out, l)
	out[i] = c
	return out
}

// SampleLibrary returns the demo content shown on first launch.
func SampleLibrary(now time.Time) Library {
	item := func(id, title string, kind Kind, status Status, words int, age time.Duration) Content {
		return Content{
			ID:        id,
			Title:     title,
			Kind:      kind,
			Status:    status,
			Words:     words,
			CreatedAt: now.Add(-age),
			UpdatedAt: now.Add(-age / 2),
		}
	}
	return Library{
		item("c-1", "Monsoon Markets of Yangon", KindArticle, StatusPublished, 1240, 72*time.Hour),
		item("c-2", "The Lantern Keeper", KindStory, StatusDraft, 3180, 30*time.Hour),
		item("c-3", "Teak and Rain", KindPoem, StatusDraft, 96, 5*time.Hour),
		item("c-4", "Why Tea Leaf Salad Travels Well", KindEssay, StatusArchived, 860, 400*time.Hour),
	}
}
