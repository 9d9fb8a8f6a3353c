package session

// Claim is the identity payload signed into a session token. It is supplied
// by the caller at login and returned verbatim on verification.
type Claim map[string]any

// Email returns the owner identifier carried by the claim.
func (c Claim) Email() string {
	email, _ := c["email"].(string)
	return email
}
