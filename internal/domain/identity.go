package domain

// Identity is the authenticated subject as reported by the identity provider,
// combined with the locally assigned role.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitempty"`
	Role    Role   `json:"role"`
}
