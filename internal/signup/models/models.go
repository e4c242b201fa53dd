// Package models holds the request and view types of the signup flow.
//
// The password field exists only as a form input name. No server-side type
// carries a password value.
package models

// Form field names shared by the signup template and the form parser.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Submission is the part of a signup POST the server reads.
type Submission struct {
	Username string
	Email    string
}

// FieldsPresent labels which of the two echoed fields carried a value.
func (s Submission) FieldsPresent() string {
	switch {
	case s.Username != "" && s.Email != "":
		return "both"
	case s.Username != "":
		return FieldUsername
	case s.Email != "":
		return FieldEmail
	default:
		return "none"
	}
}

// FormField describes one input on the signup page.
type FormField struct {
	Name         string
	Label        string
	Type         string
	Autocomplete string
}

// SignupPage is the view model of the empty signup form.
type SignupPage struct {
	Title  string
	Action string
	Fields []FormField
}

// ConfirmationPage is the view model of the confirmation page.
type ConfirmationPage struct {
	Title    string
	Username string
	Email    string
}

// NewSignupPage builds the form view posting to action.
func NewSignupPage(action string) SignupPage {
	return SignupPage{
		Title:  "Sign up",
		Action: action,
		Fields: []FormField{
			{Name: FieldUsername, Label: "Username", Type: "text", Autocomplete: "username"},
			{Name: FieldEmail, Label: "Email", Type: "email", Autocomplete: "email"},
			{Name: FieldPassword, Label: "Password", Type: "password", Autocomplete: "new-password"},
		},
	}
}

// NewConfirmationPage echoes a submission.
func NewConfirmationPage(s Submission) ConfirmationPage {
	return ConfirmationPage{
		Title:    "Signup received",
		Username: s.Username,
		Email:    s.Email,
	}
}
