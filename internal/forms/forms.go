// Package forms holds the typed form inputs for every page action and
// their validation. Validation never fails fast: each Validate returns
// every field error at once so the form can be redisplayed in full.
package forms

import (
	"net/url"
	"regexp"
	"strings"

	"kudos/api/internal/models"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

func validateEmail(email string) string {
	if !emailPattern.MatchString(email) {
		return "Please enter a valid email address"
	}
	return ""
}

func validatePassword(password string) string {
	if len(password) < 5 {
		return "Please enter a password that is at least 5 characters long"
	}
	return ""
}

func validateName(name string) string {
	if len(name) == 0 {
		return "Please enter a value"
	}
	return ""
}

type RegisterForm struct {
	Email     string `form:"email"`
	Password  string `form:"password"`
	FirstName string `form:"firstName"`
	LastName  string `form:"lastName"`
}

func (f RegisterForm) Validate() map[string]string {
	errs := map[string]string{}
	if msg := validateEmail(f.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := validatePassword(f.Password); msg != "" {
		errs["password"] = msg
	}
	if msg := validateName(f.FirstName); msg != "" {
		errs["firstName"] = msg
	}
	if msg := validateName(f.LastName); msg != "" {
		errs["lastName"] = msg
	}
	return errs
}

// Fields echoes the submitted values so a failed form keeps its state.
// The password is never echoed.
func (f RegisterForm) Fields() map[string]string {
	return map[string]string{
		"email":     f.Email,
		"firstName": f.FirstName,
		"lastName":  f.LastName,
	}
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (f LoginForm) Validate() map[string]string {
	errs := map[string]string{}
	if msg := validateEmail(f.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := validatePassword(f.Password); msg != "" {
		errs["password"] = msg
	}
	return errs
}

type ProfileForm struct {
	FirstName  string `form:"firstName"`
	LastName   string `form:"lastName"`
	Email      string `form:"email"`
	Department string `form:"department"`
}

func (f ProfileForm) Validate() map[string]string {
	errs := map[string]string{}
	if msg := validateName(f.FirstName); msg != "" {
		errs["firstName"] = msg
	}
	if msg := validateName(f.LastName); msg != "" {
		errs["lastName"] = msg
	}
	if msg := validateEmail(f.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := validateName(f.Department); msg != "" {
		errs["department"] = msg
	} else if !models.Department(f.Department).Valid() {
		errs["department"] = "Please select a valid department"
	}
	return errs
}

func (f ProfileForm) Fields() map[string]string {
	return map[string]string{
		"firstName":  f.FirstName,
		"lastName":   f.LastName,
		"email":      f.Email,
		"department": f.Department,
	}
}

type KudoForm struct {
	Message         string `form:"message"`
	BackgroundColor string `form:"backgroundColor"`
	TextColor       string `form:"textColor"`
	Emoji           string `form:"emoji"`
}

func (f KudoForm) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Message) == "" {
		errs["message"] = "Please provide a message"
	}
	if !models.Color(f.BackgroundColor).Valid() {
		errs["backgroundColor"] = "Please select a valid color"
	}
	if !models.Color(f.TextColor).Valid() {
		errs["textColor"] = "Please select a valid color"
	}
	if !models.Emoji(f.Emoji).Valid() {
		errs["emoji"] = "Please select a valid emoji"
	}
	return errs
}

// Style converts the validated form selection into a style value.
func (f KudoForm) Style() models.KudoStyle {
	return models.KudoStyle{
		BackgroundColor: models.Color(f.BackgroundColor),
		TextColor:       models.Color(f.TextColor),
		Emoji:           models.Emoji(f.Emoji),
	}
}

// RedirectTarget sanitizes a client-supplied redirect path. Only
// same-site absolute paths are honored; anything else falls back to the
// default.
func RedirectTarget(raw string, fallback string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return fallback
	}
	if u, err := url.Parse(raw); err != nil || u.Host != "" {
		return fallback
	}
	return raw
}
