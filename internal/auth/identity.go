package auth

// Identity is the verified subject behind a credential. Any of its
// identifiers may name a resource the subject owns.
type Identity struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	GoogleID string `json:"googleId,omitempty"`
	// UserID is the Usuario document resolved from Email, when known.
	UserID  string `json:"userId,omitempty"`
	Service bool   `json:"service,omitempty"`
}

// Owns reports whether resourceID is one of the identity's identifiers.
func (i *Identity) Owns(resourceID string) bool {
	if i == nil || resourceID == "" {
		return false
	}
	for _, id := range []string{i.ID, i.Email, i.GoogleID, i.UserID} {
		if id != "" && id == resourceID {
			return true
		}
	}
	return false
}

// ServiceIdentity is attached to requests carrying the service secret.
func ServiceIdentity() *Identity {
	return &Identity{Service: true}
}
