package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/assessment-engine/internal/auth"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
	HeaderActsFor  = "X-Acts-For"

	// ActsForProperty is the casdoor user property listing delegated identities.
	ActsForProperty = "acts_for"

	principalKey = "principal"
	userIDKey    = "user_id"
)

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidRole        = errors.New("invalid role")
)

// PrincipalResolver turns an incoming request into the caller identity.
type PrincipalResolver interface {
	Resolve(r *http.Request) (auth.Principal, error)
}

// HeaderResolver trusts identity headers set by an upstream gateway.
type HeaderResolver struct{}

func (HeaderResolver) Resolve(r *http.Request) (auth.Principal, error) {
	id := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if id == "" {
		return auth.Principal{}, ErrMissingCredentials
	}

	role := models.UserRole(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
	if !role.IsValid() {
		return auth.Principal{}, ErrInvalidRole
	}

	return auth.Principal{
		ID:      id,
		Role:    role,
		ActsFor: splitList(r.Header.Get(HeaderActsFor)),
	}, nil
}

type tokenParser interface {
	ParseJwtToken(token string) (*casdoorsdk.Claims, error)
}

// CasdoorResolver validates bearer tokens issued by casdoor.
type CasdoorResolver struct {
	parser tokenParser
}

func NewCasdoorResolver(endpoint, clientID, clientSecret, certificate, organization, application string) *CasdoorResolver {
	return &CasdoorResolver{
		parser: casdoorsdk.NewClient(endpoint, clientID, clientSecret, certificate, organization, application),
	}
}

func (r *CasdoorResolver) Resolve(req *http.Request) (auth.Principal, error) {
	header := req.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return auth.Principal{}, ErrMissingCredentials
	}

	claims, err := r.parser.ParseJwtToken(strings.TrimSpace(token))
	if err != nil {
		return auth.Principal{}, err
	}
	return principalFromClaims(claims)
}

// principalFromClaims uses the first engine role among the user's casdoor
// roles, then the user tag.
func principalFromClaims(claims *casdoorsdk.Claims) (auth.Principal, error) {
	user := claims.User
	id := user.Id
	if id == "" {
		id = user.Name
	}
	if id == "" {
		return auth.Principal{}, ErrMissingCredentials
	}

	var role models.UserRole
	for _, r := range user.Roles {
		if r == nil {
			continue
		}
		if candidate := models.UserRole(strings.ToLower(r.Name)); candidate.IsValid() {
			role = candidate
			break
		}
	}
	if role == "" {
		role = models.UserRole(strings.ToLower(user.Tag))
	}
	if !role.IsValid() {
		return auth.Principal{}, ErrInvalidRole
	}

	return auth.Principal{
		ID:      id,
		Role:    role,
		ActsFor: splitList(user.Properties[ActsForProperty]),
	}, nil
}

// AuthMiddleware resolves the principal for every request and rejects anonymous callers
func AuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := resolver.Resolve(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "User not authenticated",
				Details: err.Error(),
			})
			return
		}

		c.Set(principalKey, principal)
		c.Set(userIDKey, principal.ID)
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
