package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Algorithm names a password hashing scheme.
type Algorithm string

const (
	AlgorithmBcrypt   Algorithm = "bcrypt"
	AlgorithmArgon2id Algorithm = "argon2id"
)

// DefaultBcryptCost is used when no cost is configured for bcrypt.
const DefaultBcryptCost = 12

// ErrUnknownAlgorithm is returned when a hasher is configured with an unsupported algorithm.
var ErrUnknownAlgorithm = errors.New("cryptox: unknown password hash algorithm")

// Hasher produces and checks salted, deliberately slow password hashes.
// The salt and parameters are embedded in the encoded string.
//
// Verify dispatches on the encoded hash prefix, so hashes written under one
// algorithm keep verifying after the configured algorithm changes.
type Hasher struct {
	Algorithm Algorithm
	// Cost is the bcrypt cost factor or the argon2id iteration count.
	Cost int
	// Pepper is an optional server-side secret mixed into every hash.
	Pepper []byte
}

// NewHasher validates the algorithm and fills in default costs.
func NewHasher(alg string, cost int, pepper []byte) (*Hasher, error) {
	h := &Hasher{Algorithm: Algorithm(strings.ToLower(strings.TrimSpace(alg))), Cost: cost, Pepper: pepper}
	switch h.Algorithm {
	case "", AlgorithmBcrypt:
		h.Algorithm = AlgorithmBcrypt
		if h.Cost == 0 {
			h.Cost = DefaultBcryptCost
		}
		h.Cost = min(max(h.Cost, bcrypt.MinCost), bcrypt.MaxCost)
	case AlgorithmArgon2id:
		if h.Cost <= 0 {
			h.Cost = argonIterations
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
	return h, nil
}

// Hash returns the encoded hash of password.
func (h *Hasher) Hash(password string) (string, error) {
	switch h.Algorithm {
	case AlgorithmArgon2id:
		return hashArgon2id(h.peppered(password), uint32(h.Cost)) // #nosec G115 - cost validated in NewHasher
	case AlgorithmBcrypt, "":
		cost := h.Cost
		if cost == 0 {
			cost = DefaultBcryptCost
		}
		out, err := bcrypt.GenerateFromPassword(h.bcryptInput(password), cost)
		if err != nil {
			return "", fmt.Errorf("cryptox: bcrypt: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, h.Algorithm)
	}
}

// Verify reports whether password matches encoded. Malformed or unknown
// hashes report false.
func (h *Hasher) Verify(password, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return verifyArgon2id(h.peppered(password), encoded) == nil
	case strings.HasPrefix(encoded, "$2a$"),
		strings.HasPrefix(encoded, "$2b$"),
		strings.HasPrefix(encoded, "$2y$"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), h.bcryptInput(password)) == nil
	default:
		return false
	}
}

func (h *Hasher) peppered(password string) []byte {
	return append([]byte(password), h.Pepper...)
}

// bcryptInput keeps peppered input under the 72 byte bcrypt limit by
// pre-hashing it. Without a pepper the password is used as is.
func (h *Hasher) bcryptInput(password string) []byte {
	if len(h.Pepper) == 0 {
		return []byte(password)
	}
	mac := hmac.New(sha256.New, h.Pepper)
	mac.Write([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(mac.Sum(nil)))
}
