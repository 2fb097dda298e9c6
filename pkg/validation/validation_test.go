package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid", "alice_01", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"dash not allowed", "ali-ce", true},
		{"spaces", "al ice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "alice@example.com", false},
		{"empty", "", true},
		{"missing domain", "alice@", true},
		{"missing at", "alice.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret1"); err != nil {
		t.Errorf("ValidatePassword() unexpected error: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("ValidatePassword() should reject passwords under 6 characters")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("ValidatePassword() should reject empty passwords")
	}
}

func TestValidateIPAddress(t *testing.T) {
	if err := ValidateIPAddress("192.168.1.10"); err != nil {
		t.Errorf("ValidateIPAddress() unexpected error: %v", err)
	}
	if err := ValidateIPAddress("::1"); err != nil {
		t.Errorf("ValidateIPAddress() should accept IPv6: %v", err)
	}
	if err := ValidateIPAddress("999.1.1.1"); err == nil {
		t.Error("ValidateIPAddress() should reject malformed addresses")
	}
}
