package domain

// IdentityKind discriminates the two identity types a session can resolve to.
type IdentityKind string

const (
	IdentityKindUser   IdentityKind = "user"
	IdentityKindTenant IdentityKind = "tenant"
)

// Identity is the tagged union attached to a request once its session token
// resolves. Exactly one of User/Tenant is non-nil, matching Kind.
type Identity struct {
	Kind   IdentityKind `json:"kind"`
	User   *User        `json:"user,omitempty"`
	Tenant *Tenant      `json:"tenant,omitempty"`
}

func UserIdentity(u *User) Identity {
	return Identity{Kind: IdentityKindUser, User: u}
}

func TenantIdentity(t *Tenant) Identity {
	return Identity{Kind: IdentityKindTenant, Tenant: t}
}
