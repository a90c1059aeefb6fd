package domain

// LoginSession is the identity captured by the mock login form.
// It is held in memory for the lifetime of a browser session only.
type LoginSession struct {
	Name  string
	Email string
	Phone string
}
