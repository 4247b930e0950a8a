package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims for the lending platform.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string   `json:"user_id"`
	TenantID string   `json:"tenant_id"`
	Roles    []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role constants
const (
	RoleAdmin        = "admin"
	RoleRouteManager = "route_manager"
	RoleCollector    = "collector"
	RoleAuditor      = "auditor"
)
