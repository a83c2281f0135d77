package roles

// Role is the coarse access level carried in the auth token or mapped
// from Azure AD app roles.
type Role string

const (
	Viewer Role = "viewer"
	Editor Role = "editor"
	Admin  Role = "admin"
)

// Permission names the capabilities route guards check for.
type Permission string

const (
	PermissionView  Permission = "view"
	PermissionEdit  Permission = "edit"
	PermissionAdmin Permission = "admin"
)

// DefaultRole is assigned when no claim maps to a known role.
const DefaultRole = Viewer

// rolePermissions is the static role→permission table. Capabilities
// are cumulative: editors can view, admins can do everything.
var rolePermissions = map[Role][]Permission{
	Viewer: {PermissionView},
	Editor: {PermissionView, PermissionEdit},
	Admin:  {PermissionView, PermissionEdit, PermissionAdmin},
}

func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// HasPermission reports whether the role grants the permission. Pure
// lookup, no request state involved.
func HasPermission(r Role, p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
