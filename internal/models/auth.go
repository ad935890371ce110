package models

// Principal is the verified identity attached to a request after the
// bearer token has been checked against the identity provider.
type Principal struct {
	Email string `json:"email"`
	Sub   string `json:"sub"`
}
