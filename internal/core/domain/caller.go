package domain

import "fmt"

// Role is a capability granted to a caller by the deployment.
type Role string

const (
	RoleBorrower   Role = "borrower"
	RoleLiquidator Role = "liquidator"
	RoleOwner      Role = "owner"
	RoleTreasury   Role = "treasury"
	RoleRelayer    Role = "relayer"
	RoleFeeder     Role = "feeder"
	RoleCustodian  Role = "custodian"
)

// Caller identifies who invokes an operation and with which capabilities.
type Caller struct {
	Account Account
	Roles   []Role
}

// Has reports whether the caller holds role.
func (c Caller) Has(role Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ParseRole validates a textual role name.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleBorrower, RoleLiquidator, RoleOwner, RoleTreasury, RoleRelayer, RoleFeeder, RoleCustodian:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}
