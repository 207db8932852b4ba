package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validName := "Test User"
	validEmail := "test@example.com"
	validPassword := "hashedpassword123"

	user, err := NewUser(validName, validEmail, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Name != validName {
		t.Errorf("Expected name %s, got %s", validName, user.Name)
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.HashedPassword != validPassword {
		t.Errorf("Expected hashed password %s, got %s", validPassword, user.HashedPassword)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test missing name
	_, err = NewUser("", validEmail, validPassword)
	if err != ErrEmptyName {
		t.Errorf("Expected error %v, got %v", ErrEmptyName, err)
	}

	// Test invalid email
	_, err = NewUser(validName, "", validPassword)
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser(validName, "invalidemail", validPassword)
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test missing password hash
	_, err = NewUser(validName, validEmail, "")
	if err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Name:           "Test User",
		Email:          "test@example.com",
		HashedPassword: "hashedpassword123",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalidUser := validUser
	invalidUser.ID = uuid.Nil
	if err := invalidUser.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	invalidUser = validUser
	invalidUser.Name = ""
	if err := invalidUser.Validate(); err != ErrEmptyName {
		t.Errorf("Expected error %v, got %v", ErrEmptyName, err)
	}

	invalidUser = validUser
	invalidUser.Email = ""
	if err := invalidUser.Validate(); err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	invalidUser = validUser
	invalidUser.Email = "invalidemail"
	if err := invalidUser.Validate(); err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	invalidUser = validUser
	invalidUser.HashedPassword = ""
	if err := invalidUser.Validate(); err != ErrEmptyHashedPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyHashedPassword, err)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	validEmails := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@domain.org",
		"a@b.co",
	}

	for _, email := range validEmails {
		if !validateEmailFormat(email) {
			t.Errorf("Expected %q to be a valid email", email)
		}
	}

	invalidEmails := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@nodot",
		"user@.com",
		"user@domain.",
	}

	for _, email := range invalidEmails {
		if validateEmailFormat(email) {
			t.Errorf("Expected %q to be an invalid email", email)
		}
	}
}
