package navigation

import (
	"strings"

	"pmfin-backend/models"
)

type Item struct {
	Title        string            `json:"title"`
	URL          string            `json:"url"`
	AllowedRoles []models.UserRole `json:"allowed_roles,omitempty"` // empty: every role
	SubItems     []Item            `json:"sub_items,omitempty"`
}

type Group struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

type Tree []Group

type Decision string

const (
	// Pending means the caller's role is not known yet. Nothing must be rendered.
	Pending Decision = "PENDING"
	Allow   Decision = "ALLOW"
	Deny    Decision = "DENY"
)

func (i Item) isRestricted() bool {
	return len(i.AllowedRoles) > 0
}

func (i Item) allows(role models.UserRole) bool {
	if !i.isRestricted() {
		return true
	}
	for _, allowed := range i.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// matches reports whether path is the entry url itself or lies below it.
func (i Item) matches(path string) bool {
	if i.URL == "" {
		return false
	}
	url := NormalizePath(i.URL)
	if path == url {
		return true
	}
	if url == "/" {
		return false
	}
	return strings.HasPrefix(path, url+"/")
}

// Decide returns the render decision for path. role is nil while the session is loading.
// Any matching entry that excludes the role denies access, even when another
// matching entry would allow it. A path no entry matches is open.
func (t Tree) Decide(path string, role *models.UserRole) Decision {
	if role == nil {
		return Pending
	}
	if role.IsAdmin() {
		return Allow
	}
	path = NormalizePath(path)
	denied := false
	t.walk(func(item Item) bool {
		if item.matches(path) && !item.allows(*role) {
			denied = true
			return false
		}
		return true
	})
	if denied {
		return Deny
	}
	return Allow
}

// Matches returns every entry matching path, in tree order.
func (t Tree) Matches(path string) []Item {
	path = NormalizePath(path)
	result := []Item{}
	t.walk(func(item Item) bool {
		if item.matches(path) {
			result = append(result, item)
		}
		return true
	})
	return result
}

// Visible returns the menu for role. Items whose own restriction excludes the
// role are dropped together with their sub-items; empty groups are dropped.
func (t Tree) Visible(role models.UserRole) Tree {
	result := Tree{}
	for _, group := range t {
		items := filterItems(group.Items, role)
		if len(items) == 0 {
			continue
		}
		result = append(result, Group{Title: group.Title, Items: items})
	}
	return result
}

func filterItems(items []Item, role models.UserRole) []Item {
	result := []Item{}
	for _, item := range items {
		if !role.IsAdmin() && !item.allows(role) {
			continue
		}
		copied := Item{
			Title:        item.Title,
			URL:          item.URL,
			AllowedRoles: item.AllowedRoles,
		}
		if len(item.SubItems) > 0 {
			copied.SubItems = filterItems(item.SubItems, role)
		}
		result = append(result, copied)
	}
	return result
}

// walk visits groups, items and sub-items depth first until fn returns false.
func (t Tree) walk(fn func(item Item) bool) {
	for _, group := range t {
		if !walkItems(group.Items, fn) {
			return
		}
	}
}

func walkItems(items []Item, fn func(item Item) bool) bool {
	for _, item := range items {
		if !fn(item) {
			return false
		}
		if !walkItems(item.SubItems, fn) {
			return false
		}
	}
	return true
}

func NormalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// AccessView is the gate decision for a path as served by the API.
type AccessView struct {
	Path     string   `json:"path"`
	Decision Decision `json:"decision"`
}
