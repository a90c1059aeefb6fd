package auth

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"crypto-tracker/internal/domain"
	"crypto-tracker/internal/observability"
)

var upper = cases.Upper(language.Und)

// State is what the navbar renders for the login widget.
type State struct {
	Open   bool
	Form   Form // password is never echoed back
	Errors Errors
	User   *domain.LoginSession
}

// LoggedIn reports whether a user is set.
func (s State) LoggedIn() bool {
	return s.User != nil
}

// Initials returns the logged-in user's initials.
func (s State) Initials() string {
	if s.User == nil {
		return ""
	}
	return Initials(s.User.Name)
}

// Greeting returns "Hi, <first name>".
func (s State) Greeting() string {
	if s.User == nil {
		return ""
	}
	return "Hi, " + FirstName(s.User.Name)
}

// Widget is the mock login form. Nothing leaves the process.
type Widget struct {
	mu     sync.Mutex
	open   bool
	form   Form
	errors Errors
	user   *domain.LoginSession
}

// NewWidget creates a closed, logged-out widget.
func NewWidget() *Widget {
	return &Widget{}
}

// Open shows the form.
func (w *Widget) Open() {
	w.mu.Lock()
	w.open = true
	w.mu.Unlock()
}

// Close hides the form and drops any field errors.
func (w *Widget) Close() {
	w.mu.Lock()
	w.open = false
	w.errors = nil
	w.mu.Unlock()
}

// Submit validates f. On success the user is logged in, the form is hidden
// and cleared. On failure the form stays open with per-field errors.
func (w *Widget) Submit(f Form) (Errors, error) {
	errs, err := Validate(f)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if len(errs) > 0 {
		observability.RecordLoginAttempt("invalid")
		w.open = true
		w.form = Form{Name: f.Name, Email: f.Email, Phone: f.Phone}
		w.errors = errs
		return errs, nil
	}

	observability.RecordLoginAttempt("success")
	w.user = &domain.LoginSession{Name: f.Name, Email: f.Email, Phone: f.Phone}
	w.open = false
	w.form = Form{}
	w.errors = nil
	return errs, nil
}

// Logout clears the user.
func (w *Widget) Logout() {
	w.mu.Lock()
	w.user = nil
	w.mu.Unlock()
}

// State returns a copy of the widget state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{Open: w.open, Form: w.form}
	if len(w.errors) > 0 {
		s.Errors = make(Errors, len(w.errors))
		for k, v := range w.errors {
			s.Errors[k] = v
		}
	}
	if w.user != nil {
		u := *w.user
		s.User = &u
	}
	return s
}

// Initials returns the first letter of each space separated part of name,
// upper-cased.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Split(name, " ") {
		for _, r := range part {
			b.WriteRune(r)
			break
		}
	}
	return upper.String(b.String())
}

// FirstName returns the first space separated part of name.
func FirstName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first
}
