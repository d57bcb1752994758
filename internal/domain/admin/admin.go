package admin

// State is the admin session state. There are exactly two states and two
// transitions: a successful login and an unconditional logout. A failed
// login leaves the state unchanged; there is no lockout and no expiry.
type State string

const (
	StateLoggedOut State = "logged_out"
	StateLoggedIn  State = "logged_in"
)

type Session struct {
	state State
}

func NewSession(loggedIn bool) Session {
	if loggedIn {
		return Session{state: StateLoggedIn}
	}
	return Session{state: StateLoggedOut}
}

func (s *Session) LogIn()  { s.state = StateLoggedIn }
func (s *Session) LogOut() { s.state = StateLoggedOut }

func (s *Session) LoggedIn() bool { return s.state == StateLoggedIn }
