// Package session holds per-customer state: the login facade plus the
// manager that gives every browser session its own independent cart and
// catalog engine.
package session

import (
	"storefront-service/internal/domain"
)

// Session is the login display-state for one customer. There is no
// credential checking here; the storefront only needs to know who, if
// anyone, is signed in.
type Session struct {
	user     *domain.User
	loggedIn bool
}

// Login records user as the active customer.
func (s *Session) Login(user domain.User) {
	s.user = &user
	s.loggedIn = true
}

// Logout clears the active customer.
func (s *Session) Logout() {
	s.user = nil
	s.loggedIn = false
}

// User returns the active customer and whether one is signed in.
func (s *Session) User() (domain.User, bool) {
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a customer is signed in.
func (s *Session) LoggedIn() bool {
	return s.loggedIn
}
