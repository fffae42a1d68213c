package auth

import (
	"strings"

	apperrors "github.com/SAP-F-2025/assessment-engine/internal/errors"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
)

// Resource classes guarded by the engine.
const (
	ResourceQuestionBank = "question_bank"
	ResourceQuiz         = "quiz"
	ResourceClass        = "class"
	ResourceAttempt      = "attempt"
)

// Principal is the caller identity resolved by the surrounding system. ActsFor
// lists the identities the principal may act on behalf of (for an institute
// owner, the teachers it employs).
type Principal struct {
	ID      string          `json:"id"`
	Role    models.UserRole `json:"role"`
	ActsFor []string        `json:"acts_for,omitempty"`
}

func (p Principal) IsStudent() bool {
	return p.Role == models.RoleStudent
}

// DelegationPolicy decides whether a role is privileged for a resource class.
// The global role table lives outside the engine and is injected through this.
type DelegationPolicy interface {
	Privileged(role models.UserRole, resource string) bool
}

// PolicyFunc adapts a plain function to DelegationPolicy.
type PolicyFunc func(role models.UserRole, resource string) bool

func (f PolicyFunc) Privileged(role models.UserRole, resource string) bool {
	return f(role, resource)
}

// Guard makes ALLOW/DENY decisions for mutations. It performs no I/O.
type Guard struct {
	policy DelegationPolicy
}

func NewGuard(policy DelegationPolicy) *Guard {
	if policy == nil {
		policy = NewRolePolicy(nil)
	}
	return &Guard{policy: policy}
}

// CanMutate reports whether principal may change a resource owned by ownerID.
func (g *Guard) CanMutate(principal Principal, resource, ownerID string) bool {
	if principal.ID == "" {
		return false
	}
	if principal.ID == ownerID {
		return true
	}
	if !g.policy.Privileged(principal.Role, resource) {
		return false
	}
	if principal.Role == models.RoleAdmin {
		return true
	}
	for _, id := range principal.ActsFor {
		if id == ownerID {
			return true
		}
	}
	return false
}

// Authorize is CanMutate surfaced as an error matching apperrors.ErrForbidden.
func (g *Guard) Authorize(principal Principal, resource, action string, resourceID uint, ownerID string) error {
	if g.CanMutate(principal, resource, ownerID) {
		return nil
	}
	return apperrors.NewPermissionError(principal.ID, resourceID, resource, action, "not owner or insufficient permissions")
}

// RolePolicy maps roles to resource patterns; a trailing "*" matches any suffix.
type RolePolicy struct {
	rules map[models.UserRole][]string
}

// DefaultRoleRules mirrors the administration system's role table.
var DefaultRoleRules = map[models.UserRole][]string{
	models.RoleAdmin:          {"*"},
	models.RoleInstituteOwner: {ResourceQuestionBank, ResourceQuiz, ResourceClass},
}

func NewRolePolicy(rules map[models.UserRole][]string) *RolePolicy {
	if rules == nil {
		rules = DefaultRoleRules
	}
	return &RolePolicy{rules: rules}
}

func (p *RolePolicy) Privileged(role models.UserRole, resource string) bool {
	for _, pattern := range p.rules[role] {
		if matchResource(pattern, resource) {
			return true
		}
	}
	return false
}

func matchResource(pattern, resource string) bool {
	if pattern == "*" || pattern == resource {
		return true
	}
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(resource, strings.TrimSuffix(pattern, "*"))
	}
	return false
}
