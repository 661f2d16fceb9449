// Package templates renders the HTML bodies for outbound mail.
package templates

import (
	_ "embed"
	"html/template"
	"strings"
	"time"
)

//go:embed verification.html
var verificationHTML string

//go:embed password_reset.html
var passwordResetHTML string

var (
	verificationTmpl  = template.Must(template.New("verification").Parse(verificationHTML))
	passwordResetTmpl = template.Must(template.New("password_reset").Parse(passwordResetHTML))
)

// VerificationData feeds the email verification template
type VerificationData struct {
	Name      string
	VerifyURL string
	Year      int
}

// PasswordResetData feeds the password reset template
type PasswordResetData struct {
	Name     string
	ResetURL string
	Year     int
}

// RenderVerification renders the email verification body
func RenderVerification(data VerificationData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf strings.Builder
	err := verificationTmpl.Execute(&buf, data)
	return buf.String(), err
}

// RenderPasswordReset renders the password reset body
func RenderPasswordReset(data PasswordResetData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf strings.Builder
	err := passwordResetTmpl.Execute(&buf, data)
	return buf.String(), err
}
