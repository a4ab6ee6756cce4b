package types

// CreatePersonRequest provisions a new person on the roster. Email and
// phone are optional; they only matter for OTP delivery.
type CreatePersonRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AssignKeyRequest binds a physical credential token to a person.
type AssignKeyRequest struct {
	UID string `json:"uid"`
	Key string `json:"key"`
}

// PersonRef identifies a person without exposing contact details. Used by
// the provisioning UI to list people still waiting for a credential.
type PersonRef struct {
	UID string `json:"uid"`
}

// PersonResponse is the provisioning view of a person.
type PersonResponse struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Key   string `json:"key,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
