package models

// Actor roles. A caller's token is resolved exactly once, at the
// middleware boundary, into one of these closed variants.
const (
	RoleStoreOwner = "store_owner"
	RoleBrandOwner = "brand_owner"
	RoleAdmin      = "admin"
)

// Actor is the typed identity of a request caller.
type Actor struct {
	ProfileID string `json:"profileId"`
	Role      string `json:"role"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsStoreOwner() bool {
	return a.Role == RoleStoreOwner
}

func (a Actor) IsBrandOwner() bool {
	return a.Role == RoleBrandOwner
}
