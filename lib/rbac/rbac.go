package rbac

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"pmfin-backend/lib/navigation"
	"pmfin-backend/models"
)

type Provider interface {
	GetRuleFunc(method, path string) (models.RbacFunc, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	Instance = newImpl()
}

func newImpl() *impl {
	i := &impl{
		rules:       map[HTTPMethod]*routeRules{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	return i
}

// impl is filled once at start up and only read afterwards.
type impl struct {
	rules       map[HTTPMethod]*routeRules
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

func (i *impl) GetRuleFunc(method, path string) (models.RbacFunc, bool) {
	rules, ok := i.rules[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	path = navigation.NormalizePath(path)
	if handler, ok := rules.exact[path]; ok {
		return handler, true
	}
	for _, rule := range rules.patterns {
		if rule.match(path) {
			return rule.handler, true
		}
	}
	return nil, false
}

// RegisterRule adds a route rule. A nil handler allows exactly the listed roles.
// The permission is recorded for every listed role and reported by GetPermissions.
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, swaggerPattern string, handler models.RbacFunc) error {
	path, method, err := parseSwaggerPattern(swaggerPattern)
	if err != nil {
		return err
	}
	for _, role := range roles {
		i.grant(role, module, permission)
	}
	if handler == nil {
		handler = AllowByRoleFunc(roles)
	}

	rules, ok := i.rules[method]
	if !ok {
		rules = &routeRules{exact: map[string]models.RbacFunc{}}
		i.rules[method] = rules
	}
	if !strings.Contains(path, "{") {
		rules.exact[path] = handler
		return nil
	}
	rules.patterns = append(rules.patterns, patternRule{
		segments: patternSegments(path),
		handler:  handler,
	})
	return nil
}

func (i *impl) grant(role models.UserRole, module models.Module, permission models.Permission) {
	modules, ok := i.permissions[role]
	if !ok {
		modules = map[models.Module][]models.Permission{}
		i.permissions[role] = modules
	}
	if !slices.Contains(modules[module], permission) {
		modules[module] = append(modules[module], permission)
	}
}

// GetPermissions returns a sorted copy of the permission map of role. ADMIN gets every permission.
func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	result := map[models.Module][]models.Permission{}
	for granted, modules := range i.permissions {
		if granted != role && !role.IsAdmin() {
			continue
		}
		for module, permissions := range modules {
			for _, permission := range permissions {
				if !slices.Contains(result[module], permission) {
					result[module] = append(result[module], permission)
				}
			}
		}
	}
	for _, permissions := range result {
		slices.Sort(permissions)
	}
	return result
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	return func(userID string, role models.UserRole, uri string) bool {
		return slices.Contains(accessRoles, role)
	}
}

// parseSwaggerPattern splits "/api/v1/users/{id} [put]" into the normalised path and the method.
func parseSwaggerPattern(pattern string) (path string, method HTTPMethod, err error) {
	pattern = strings.TrimSpace(pattern)
	start := strings.LastIndex(pattern, "[")
	end := strings.LastIndex(pattern, "]")
	if start == -1 || end < start {
		return "", "", errors.Errorf("method not provided for pattern (%v)", pattern)
	}
	path = navigation.NormalizePath(strings.TrimSpace(pattern[:start]))
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(pattern[start+1 : end])))
	if method == "" {
		return "", "", errors.Errorf("method not provided for pattern (%v)", pattern)
	}
	return path, method, nil
}

func patternSegments(path string) []string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for idx, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[idx] = ""
		}
	}
	return segments
}
