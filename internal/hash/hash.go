package hash

import "golang.org/x/crypto/bcrypt"

type Hasher struct {
	Cost int

	// dummy is a digest of a throwaway password, generated at the configured
	// cost. Login burns a comparison against it when no account matches, so
	// unknown-username and wrong-password take the same time whatever the
	// cost is tuned to.
	dummy string
}

func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	// Cannot fail for an in-range cost.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("throwaway-timing-pad"), cost)
	return &Hasher{Cost: cost, dummy: string(dummy)}
}

// Hash returns a self-describing bcrypt digest. The salt is random per call,
// so hashing the same password twice yields different digests.
func (h *Hasher) Hash(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

// Check reports whether password matches digest. Malformed digests are
// treated as a mismatch, never an error.
func (h *Hasher) Check(digest, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}

// CheckDummy performs a full verification against the dummy digest and always
// reports false. Callers use it to equalize timing on the no-such-account
// path.
func (h *Hasher) CheckDummy(password string) bool {
	bcrypt.CompareHashAndPassword([]byte(h.dummy), []byte(password))
	return false
}
