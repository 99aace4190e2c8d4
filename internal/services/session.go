package services

import "net/http"

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "auth-token"

// SessionService resolves an inbound request to a user identity.
type SessionService struct {
	tokens *TokenService
}

func NewSessionService(tokens *TokenService) *SessionService {
	return &SessionService{tokens: tokens}
}

// Issue creates a session token for the user.
func (s *SessionService) Issue(userID, username string) (string, error) {
	return s.tokens.Issue(userID, username)
}

// Resolve returns the identity from the request's session cookie, or nil when
// the cookie is absent or the token fails verification. Pure function of the
// request; no side effects.
func (s *SessionService) Resolve(r *http.Request) *Identity {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	return s.tokens.Verify(cookie.Value)
}
