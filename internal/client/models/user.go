package models

// User is the authenticated identity as reported by the service.
// Beyond display, the identity is opaque to the client.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
