package mocks

import "errors"

// MockPasswordHasher implements auth.PasswordHasher for testing
type MockPasswordHasher struct {
	// HashFn allows for custom hashing logic in tests
	HashFn func(password string) (string, error)

	// Hashed is the value returned by the default implementation
	Hashed string
	Err    error
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.Hashed != "" {
		return m.Hashed, m.Err
	}
	return "hashed:" + password, m.Err
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}

	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
