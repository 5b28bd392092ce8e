package forms

import "testing"

func TestRegisterForm_Valid(t *testing.T) {
	form := RegisterForm{
		Email:     "ada@example.com",
		Password:  "hunter2",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestRegisterForm_AllErrorsReportedTogether(t *testing.T) {
	form := RegisterForm{
		Email:     "not-an-email",
		Password:  "abc",
		FirstName: "",
		LastName:  "",
	}
	errs := form.Validate()
	for _, field := range []string{"email", "password", "firstName", "lastName"} {
		if errs[field] == "" {
			t.Errorf("expected error for %s, got none (errs=%v)", field, errs)
		}
	}
}

func TestRegisterForm_FieldsOmitPassword(t *testing.T) {
	form := RegisterForm{Email: "a@b.co", Password: "secret", FirstName: "A", LastName: "B"}
	fields := form.Fields()
	if _, ok := fields["password"]; ok {
		t.Fatal("password must not be echoed back")
	}
	if fields["email"] != "a@b.co" {
		t.Fatalf("email not echoed: %v", fields)
	}
}

func TestLoginForm_ShortPassword(t *testing.T) {
	form := LoginForm{Email: "ada@example.com", Password: "1234"}
	errs := form.Validate()
	if errs["password"] == "" {
		t.Fatal("expected password error")
	}
	if errs["email"] != "" {
		t.Fatalf("unexpected email error: %s", errs["email"])
	}
}

func TestProfileForm_EmptyFirstName(t *testing.T) {
	form := ProfileForm{
		FirstName:  "",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Department: "ENGINEERING",
	}
	errs := form.Validate()
	if errs["firstName"] == "" {
		t.Fatal("expected firstName error")
	}
	if len(errs) != 1 {
		t.Fatalf("expected only firstName error, got %v", errs)
	}
}

func TestProfileForm_InvalidDepartment(t *testing.T) {
	form := ProfileForm{
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Department: "PIRACY",
	}
	if errs := form.Validate(); errs["department"] == "" {
		t.Fatal("expected department error")
	}
}

func TestProfileForm_FieldsEchoSubmittedValues(t *testing.T) {
	form := ProfileForm{FirstName: "", LastName: "L", Email: "x", Department: "HR"}
	fields := form.Fields()
	if fields["firstName"] != "" || fields["lastName"] != "L" || fields["email"] != "x" || fields["department"] != "HR" {
		t.Fatalf("fields not echoed unchanged: %v", fields)
	}
}

func TestKudoForm_Validate(t *testing.T) {
	form := KudoForm{
		Message:         "great work on the launch",
		BackgroundColor: "RED",
		TextColor:       "WHITE",
		Emoji:           "PARTY",
	}
	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	form.Message = "   "
	form.Emoji = "DRAGON"
	errs := form.Validate()
	if errs["message"] == "" {
		t.Error("expected message error for blank message")
	}
	if errs["emoji"] == "" {
		t.Error("expected emoji error for unknown emoji")
	}
}

func TestRedirectTarget(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", "/home"},
		{"/home/profile", "/home/profile"},
		{"//evil.example.com", "/home"},
		{"https://evil.example.com", "/home"},
		{"relative/path", "/home"},
	}
	for _, tc := range cases {
		if got := RedirectTarget(tc.raw, "/home"); got != tc.want {
			t.Errorf("RedirectTarget(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
