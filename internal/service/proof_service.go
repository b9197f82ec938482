package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/pkg/apperror"
)

// HMACProofVerifier implements ports.ProofVerifier. Each destination chain
// has its own relay secret; a proof is HMAC-SHA256 over the canonical
// delivery string, and each destination tx hash is accepted once.
type HMACProofVerifier struct {
	secrets map[string]string
	nonces  ports.NonceStore
	clock   ports.Clock
	ttl     time.Duration
}

// NewHMACProofVerifier creates a verifier for the given per-chain relay secrets.
func NewHMACProofVerifier(secrets map[string]string, nonces ports.NonceStore, clock ports.Clock, ttl time.Duration) *HMACProofVerifier {
	return &HMACProofVerifier{secrets: secrets, nonces: nonces, clock: clock, ttl: ttl}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildDeliveryString constructs the canonical payload a relay signs.
// Format: ID|SOURCE|DEST|RECIPIENT|ASSET|AMOUNT|DEST_TX|ISSUED_AT
func BuildDeliveryString(t *domain.BridgeTransfer, destTxHash string, issuedAt int64) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d|%s|%d",
		t.ID, t.SourceChain, t.DestChain, t.Recipient, t.Asset, t.Amount, destTxHash, issuedAt)
}

// Verify checks the relay signature, the proof age and replay of the
// destination tx hash. Signature and age are checked before the nonce is
// consumed.
func (v *HMACProofVerifier) Verify(ctx context.Context, t *domain.BridgeTransfer, proof ports.DeliveryProof) error {
	secret, ok := v.secrets[t.DestChain]
	if !ok || secret == "" || proof.DestTxHash == "" || proof.Signature == "" {
		return apperror.ErrInvalidProof()
	}

	expected := Sign(secret, BuildDeliveryString(t, proof.DestTxHash, proof.IssuedAt))
	if !hmac.Equal([]byte(expected), []byte(proof.Signature)) {
		return apperror.ErrInvalidProof()
	}

	age := v.clock.Now() - proof.IssuedAt
	if age < 0 {
		age = -age
	}
	if age > int64(v.ttl/time.Second) {
		return apperror.ErrInvalidProof()
	}

	fresh, err := v.nonces.CheckAndSet(ctx, t.DestChain, proof.DestTxHash, v.ttl)
	if err != nil {
		return apperror.ErrStorage(err)
	}
	if !fresh {
		return apperror.ErrProofReplayed()
	}
	return nil
}
