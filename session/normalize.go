package session

import "strings"

// Normalize maps a raw server user payload onto the canonical session shape.
// Role is always the upper-cased, trimmed form of whatever the server
// supplied (falling back to the display label when the role field is empty),
// and RoleLabel is the server label or the title-cased role. Normalize is
// pure and idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s Session) Session {
	source := string(s.Role)
	if source == "" {
		source = s.RoleLabel
	}
	s.Role = Role(strings.ToUpper(strings.TrimSpace(source)))
	if s.RoleLabel == "" {
		s.RoleLabel = titleLabel(s.Role)
	}
	return s
}

// MergeTokens carries the previous session's tokens onto a fresh profile
// payload. The profile endpoint never echoes tokens, so a refresh must not
// drop them; a fresh payload that does carry tokens wins.
func MergeTokens(prev, fresh Session) Session {
	if fresh.AccessToken == "" {
		fresh.AccessToken = prev.AccessToken
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = prev.RefreshToken
	}
	return fresh
}

func titleLabel(r Role) string {
	if r == "" {
		return ""
	}
	label := string(r)
	return label[:1] + strings.ToLower(label[1:])
}
