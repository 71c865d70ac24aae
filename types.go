package loomclient

import "github.com/loomlane/loomclient/session"

// OperationState defines a public type used by loomclient APIs.
//
// OperationState is the idle/loading/succeeded/failed lifecycle tracked for
// each mutating account operation.
type OperationState uint8

const (
	// StateIdle is an exported constant or variable used by the storefront client.
	StateIdle OperationState = iota
	// StateLoading is an exported constant or variable used by the storefront client.
	StateLoading
	// StateSucceeded is an exported constant or variable used by the storefront client.
	StateSucceeded
	// StateFailed is an exported constant or variable used by the storefront client.
	StateFailed
)

// String describes the string operation and its observable behavior.
func (s OperationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OperationStatus defines a public type used by loomclient APIs.
//
// Message carries the success banner and Error the extracted failure
// message; at most one of them is set at a time.
type OperationStatus struct {
	State   OperationState
	Message string
	Error   string
}

// RegisterInput carries the new-account fields for Register. Seller and
// designer accounts require admin approval before they can log in; buyers
// still log in explicitly after registering.
type RegisterInput struct {
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Phone    string       `json:"phone,omitempty"`
	Company  string       `json:"company,omitempty"`
	Role     session.Role `json:"role"`
}

// ProfileUpdate carries the mutable profile fields for UpdateProfile.
// Zero-valued fields are omitted from the request.
type ProfileUpdate struct {
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company,omitempty"`
	RemoveAvatar bool   `json:"remove_avatar,omitempty"`
}
