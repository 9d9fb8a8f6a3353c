package session

import "net/http"

const DefaultCookieName = "token"

// CookieOptions defines how the session cookie is issued.
type CookieOptions struct {
	Name     string
	Path     string
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// DefaultCookieOptions allows cross-site delivery to the trusted front-end
// origin, which requires Secure.
func DefaultCookieOptions() CookieOptions {
	return CookieOptions{
		Name:     DefaultCookieName,
		Path:     "/",
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

func (o CookieOptions) normalize() CookieOptions {
	if o.Name == "" {
		o.Name = DefaultCookieName
	}
	if o.Path == "" {
		o.Path = "/"
	}
	if o.SameSite == 0 {
		o.SameSite = http.SameSiteNoneMode
	}
	return o
}

// Attach sets the session cookie. No Expires or Max-Age is sent; the token's
// own expiry is authoritative.
func Attach(w http.ResponseWriter, token string, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    token,
		Path:     opts.Path,
		Domain:   opts.Domain,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// Extract returns the session token. A missing or empty cookie is reported
// as absent, not as an error.
func Extract(r *http.Request, opts CookieOptions) (string, bool) {
	opts = opts.normalize()

	cookie, err := r.Cookie(opts.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// Clear expires the session cookie immediately. Clearing an absent cookie
// is fine.
func Clear(w http.ResponseWriter, opts CookieOptions) {
	opts = opts.normalize()

	http.SetCookie(w, &http.Cookie{
		Name:     opts.Name,
		Value:    "",
		Path:     opts.Path,
		Domain:   opts.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
