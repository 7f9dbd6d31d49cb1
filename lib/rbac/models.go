package rbac

import (
	"strings"

	"pmfin-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// routeRules holds the rules of one HTTP method. Exact paths are checked before patterns.
type routeRules struct {
	exact    map[string]models.RbacFunc
	patterns []patternRule
}

// patternRule matches paths segment by segment; an empty segment is a path parameter.
type patternRule struct {
	segments []string
	handler  models.RbacFunc
}

func (r patternRule) match(path string) bool {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) != len(r.segments) {
		return false
	}
	for idx, segment := range r.segments {
		if parts[idx] == "" {
			return false
		}
		if segment != "" && segment != parts[idx] {
			return false
		}
	}
	return true
}
