package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Role is the normalized role of the signed-in user.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleManager
	RoleHR
	RoleIT
	RoleAccounting
	RoleOperations
	RoleEmployee
)

var roleNames = map[Role]string{
	RoleUnknown:    "unknown",
	RoleAdmin:      "admin",
	RoleManager:    "manager",
	RoleHR:         "hr",
	RoleIT:         "it",
	RoleAccounting: "accounting",
	RoleOperations: "operations",
	RoleEmployee:   "employee",
}

var roleAliases = map[string]Role{
	"admin":           RoleAdmin,
	"administrator":   RoleAdmin,
	"superadmin":      RoleAdmin,
	"manager":         RoleManager,
	"hr":              RoleHR,
	"human_resources": RoleHR,
	"it":              RoleIT,
	"accounting":      RoleAccounting,
	"finance":         RoleAccounting,
	"operations":      RoleOperations,
	"ops":             RoleOperations,
	"employee":        RoleEmployee,
	"user":            RoleEmployee,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}

	return "unknown"
}

// ParseRole resolves a role claim. The claim is either a name or an object
// carrying it under name, role or slug.
func ParseRole(v any) Role {
	switch v := v.(type) {
	case string:
		key := strings.ToLower(strings.TrimSpace(v))
		key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)

		if r, ok := roleAliases[key]; ok {
			return r
		}
	case map[string]any:
		for _, k := range []string{"name", "role", "slug"} {
			if r := ParseRole(v[k]); r != RoleUnknown {
				return r
			}
		}
	case Role:
		return v
	}

	return RoleUnknown
}

// CanManage reports whether the role may edit records of the department owning resource.
func (r Role) CanManage(department Role) bool {
	switch r {
	case RoleAdmin, RoleManager:
		return true
	case RoleUnknown, RoleEmployee:
		return false
	}

	return r == department
}

// Session is what the dashboard knows about the signed-in user.
type Session struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// FromToken reads the claims of a bearer token. The signature is not checked:
// the backend verifies every request carrying the token.
func FromToken(token string) (Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return Session{}, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	s := Session{
		UserID: stringClaim(claims, "sub", "userId", "id"),
		Email:  stringClaim(claims, "email"),
		Name:   stringClaim(claims, "name"),
	}

	role, ok := claims["role"]
	if !ok {
		role = claims["user"]
		if user, isMap := role.(map[string]any); isMap {
			role = user["role"]
		}
	}

	s.Role = ParseRole(role)

	return s, nil
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}

	return ""
}
