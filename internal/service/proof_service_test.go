package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports"
	"bitpesa-lending/internal/core/ports/mocks"
	"bitpesa-lending/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const relaySecret = "ethereum-relay-secret"

func setupProofVerifier(t *testing.T) (*HMACProofVerifier, *mocks.MockNonceStore, *domain.BridgeTransfer) {
	ctrl := gomock.NewController(t)
	nonces := mocks.NewMockNonceStore(ctrl)
	v := NewHMACProofVerifier(map[string]string{"ethereum": relaySecret}, nonces, &fakeClock{now: startTime}, 10*time.Minute)
	tr := &domain.BridgeTransfer{
		ID:          uuid.MustParse("6f1c2a7e-1d9b-4b8e-9a53-0c7f3e2d1a11"),
		Sender:      alice,
		Recipient:   bob,
		SourceChain: "bitcoin",
		DestChain:   "ethereum",
		Asset:       domain.AssetCollateral,
		Amount:      400,
		Status:      domain.BridgeStatusPending,
	}
	return v, nonces, tr
}

func signedProof(tr *domain.BridgeTransfer, secret string, issuedAt int64) ports.DeliveryProof {
	return ports.DeliveryProof{
		Relayer:    "relay-1",
		DestTxHash: "0xfeed",
		IssuedAt:   issuedAt,
		Signature:  Sign(secret, BuildDeliveryString(tr, "0xfeed", issuedAt)),
	}
}

func TestSign_LowercaseHex(t *testing.T) {
	sig := Sign("key", "data")
	assert.Regexp(t, `^[0-9a-f]{64}$`, sig)
	assert.Equal(t, sig, Sign("key", "data"))
	assert.NotEqual(t, sig, Sign("other", "data"))
}

func TestBuildDeliveryString(t *testing.T) {
	_, _, tr := setupProofVerifier(t)
	got := BuildDeliveryString(tr, "0xfeed", 1700000000)
	assert.Equal(t,
		"6f1c2a7e-1d9b-4b8e-9a53-0c7f3e2d1a11|bitcoin|ethereum|0x0000000000000000000000000000000000000b0b|COLLATERAL|400|0xfeed|1700000000",
		got)
}

func TestHMACProofVerifier_Valid(t *testing.T) {
	v, nonces, tr := setupProofVerifier(t)
	nonces.EXPECT().CheckAndSet(gomock.Any(), "ethereum", "0xfeed", 10*time.Minute).Return(true, nil)

	require.NoError(t, v.Verify(context.Background(), tr, signedProof(tr, relaySecret, startTime-60)))
}

func TestHMACProofVerifier_Replayed(t *testing.T) {
	v, nonces, tr := setupProofVerifier(t)
	nonces.EXPECT().CheckAndSet(gomock.Any(), "ethereum", "0xfeed", gomock.Any()).Return(false, nil)

	err := v.Verify(context.Background(), tr, signedProof(tr, relaySecret, startTime))
	assert.Equal(t, apperror.CodeProofReplayed, apperror.Code(err))
}

func TestHMACProofVerifier_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		proof func(tr *domain.BridgeTransfer) ports.DeliveryProof
	}{
		{"wrong secret", func(tr *domain.BridgeTransfer) ports.DeliveryProof {
			return signedProof(tr, "bitcoin-relay-secret", startTime)
		}},
		{"tampered tx hash", func(tr *domain.BridgeTransfer) ports.DeliveryProof {
			p := signedProof(tr, relaySecret, startTime)
			p.DestTxHash = "0xbeef"
			return p
		}},
		{"expired", func(tr *domain.BridgeTransfer) ports.DeliveryProof {
			return signedProof(tr, relaySecret, startTime-601)
		}},
		{"from the future", func(tr *domain.BridgeTransfer) ports.DeliveryProof {
			return signedProof(tr, relaySecret, startTime+601)
		}},
		{"empty signature", func(tr *domain.BridgeTransfer) ports.DeliveryProof {
			p := signedProof(tr, relaySecret, startTime)
			p.Signature = ""
			return p
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _, tr := setupProofVerifier(t)
			err := v.Verify(context.Background(), tr, tt.proof(tr))
			assert.Equal(t, apperror.CodeInvalidProof, apperror.Code(err))
		})
	}
}

func TestHMACProofVerifier_UnknownChain(t *testing.T) {
	v, _, tr := setupProofVerifier(t)
	tr.DestChain = "solana"

	err := v.Verify(context.Background(), tr, signedProof(tr, relaySecret, startTime))
	assert.Equal(t, apperror.CodeInvalidProof, apperror.Code(err))
}

func TestHMACProofVerifier_NonceStoreDown(t *testing.T) {
	v, nonces, tr := setupProofVerifier(t)
	nonces.EXPECT().CheckAndSet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(false, errors.New("redis: connection refused"))

	err := v.Verify(context.Background(), tr, signedProof(tr, relaySecret, startTime))
	assert.Equal(t, apperror.CodeStorageFailure, apperror.Code(err))
}
