package domain

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// Account is an opaque identifier derived from a public key.
// Balances never live on the account itself; see Balance.
type Account string

const maxAccountLength = 128

// DeriveAccount returns the 0x-prefixed hex of the last 20 bytes of
// Keccak-256(pubKey), the same derivation EVM chains use.
func DeriveAccount(pubKey []byte) (Account, error) {
	if len(pubKey) == 0 {
		return "", errors.New("empty public key")
	}
	h := sha3.NewLegacyKeccak256()
	h.Write(pubKey)
	sum := h.Sum(nil)
	return Account("0x" + hex.EncodeToString(sum[len(sum)-20:])), nil
}

// ParseAccount validates the textual form of an account.
func ParseAccount(s string) (Account, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("account is empty")
	}
	if len(s) > maxAccountLength {
		return "", errors.New("account is too long")
	}
	if strings.HasPrefix(s, "0x") {
		if _, err := hex.DecodeString(s[2:]); err != nil || len(s) != 42 {
			return "", errors.New("account is not a 20-byte hex address")
		}
		return Account(strings.ToLower(s)), nil
	}
	return Account(s), nil
}

func (a Account) String() string { return string(a) }
