package dto

import "testing"

func TestRegisterRequest_ValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid with special character", "Password1!", true},
		{"exactly eight characters", "Passw0r!", true},
		{"special character only", "!!!!!!!!", true},
		{"too short", "Pass1!", false},
		{"seven characters", "Passw0!", false},
		{"no special character", "Password123", false},
		{"empty", "", false},
		{"long but plain", "averylongpasswordwithoutsymbols", false},
		{"underscore counts as special", "password_1", true},
		{"space is not special", "password 123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &RegisterRequest{Password: tt.password}
			valid, msg := req.ValidatePassword()
			if valid != tt.valid {
				t.Errorf("ValidatePassword(%q) = %v (%s), want %v", tt.password, valid, msg, tt.valid)
			}
			if !valid && msg == "" {
				t.Error("ValidatePassword() rejected without a message")
			}
		})
	}
}

func TestRegisterRequest_ValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"plain address", "user@example.com", true},
		{"subdomain", "user@mail.example.com", true},
		{"plus tag", "user+tag@example.com", true},
		{"missing at", "userexample.com", false},
		{"missing domain", "user@", false},
		{"missing tld", "user@example", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &RegisterRequest{Email: tt.email}
			valid, _ := req.ValidateEmail()
			if valid != tt.valid {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, valid, tt.valid)
			}
		})
	}
}

func TestRegisterRequest_ValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		req     RegisterRequest
		missing []string
	}{
		{
			name:    "all present",
			req:     RegisterRequest{Name: "A", Email: "a@example.com", Password: "x"},
			missing: nil,
		},
		{
			name:    "whitespace name",
			req:     RegisterRequest{Name: "   ", Email: "a@example.com", Password: "x"},
			missing: []string{"name"},
		},
		{
			name:    "everything empty",
			req:     RegisterRequest{},
			missing: []string{"name", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.req.ValidateRequiredFields()
			if len(got) != len(tt.missing) {
				t.Fatalf("ValidateRequiredFields() = %v, want %v", got, tt.missing)
			}
			for i := range tt.missing {
				if got[i] != tt.missing[i] {
					t.Errorf("ValidateRequiredFields()[%d] = %v, want %v", i, got[i], tt.missing[i])
				}
			}
		})
	}
}
