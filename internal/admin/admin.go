package admin

import "golang.org/x/crypto/bcrypt"

// VerifyToken checks a plaintext admin token against the configured
// bcrypt hash. An empty hash disables admin operations entirely.
func VerifyToken(hashed, plain string) bool {
	if hashed == "" || plain == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// HashToken produces a bcrypt hash suitable for ADMIN_TOKEN_HASH.
func HashToken(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
