package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by staff tokens.
type Claims struct {
	jwt.RegisteredClaims
	StaffID string   `json:"staff_id"`
	Name    string   `json:"name,omitempty"`
	Roles   []string `json:"roles"`
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

// Staff role constants.
const (
	RoleAdmin       = "admin"
	RoleLoanOfficer = "loan_officer"
	RoleAuditor     = "auditor"
)
