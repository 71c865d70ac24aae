package session

// Role is the canonical, upper-cased account role.
type Role string

const (
	// RoleAdmin is an exported constant or variable used by the storefront client.
	RoleAdmin Role = "ADMIN"
	// RoleSeller is an exported constant or variable used by the storefront client.
	RoleSeller Role = "SELLER"
	// RoleDesigner is an exported constant or variable used by the storefront client.
	RoleDesigner Role = "DESIGNER"
	// RoleBuyer is an exported constant or variable used by the storefront client.
	RoleBuyer Role = "BUYER"
)

// Session defines a public type used by loomclient APIs.
//
// Session is the durable record of the authenticated principal. The JSON tags
// match the server's snake_case user payload, so a profile response decodes
// directly into a Session before normalization.
type Session struct {
	UserID    int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Role      Role   `json:"role"`
	RoleLabel string `json:"role_label,omitempty"`

	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// DisplayName composes a human-readable name the way the storefront header
// does: first/last name, falling back to username, then email.
func (s Session) DisplayName() string {
	name := s.FirstName
	if s.LastName != "" {
		if name != "" {
			name += " "
		}
		name += s.LastName
	}
	if name != "" {
		return name
	}
	if s.Username != "" {
		return s.Username
	}
	return s.Email
}
