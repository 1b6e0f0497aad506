// Package signature provides helper functions for handling the blockchain
// signature needs. Keys live on the secp256k1 curve and every value handed
// out of this package is rendered as lowercase hex without a 0x prefix.
package signature

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Fixed encoded lengths embedded into the transaction format. A public key
// is a compressed curve point (33 bytes) and a signature is [R|S] (64 bytes).
const (
	PublicKeyLength = 66
	SignatureLength = 128
)

// ledgerStamp is mixed into every digest we sign so signatures produced by
// this ledger can never be replayed as a plain keccak signature elsewhere.
const ledgerStamp = "\x19Ledger Signed Message:\n32"

// ErrNilKey is returned when an operation is handed a missing private key.
var ErrNilKey = errors.New("private key is nil")

// =============================================================================

// GenerateKey produces a new random private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	return crypto.GenerateKey()
}

// PrivateKeyFromHex parses a hex encoded private key.
func PrivateKeyFromHex(s string) (*ecdsa.PrivateKey, error) {
	privateKey, err := crypto.HexToECDSA(s)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return privateKey, nil
}

// PrivateKeyToHex renders the private key as hex.
func PrivateKeyToHex(privateKey *ecdsa.PrivateKey) string {
	return common.Bytes2Hex(crypto.FromECDSA(privateKey))
}

// PublicKey derives the compressed public key for the private key.
func PublicKey(privateKey *ecdsa.PrivateKey) (string, error) {
	if privateKey == nil {
		return "", ErrNilKey
	}

	return common.Bytes2Hex(crypto.CompressPubkey(&privateKey.PublicKey)), nil
}

// Sign uses the specified private key to sign the message.
func Sign(privateKey *ecdsa.PrivateKey, message string) (string, error) {
	if privateKey == nil {
		return "", ErrNilKey
	}

	// Sign the stamped digest to produce a 65 byte [R|S|V] signature.
	sig, err := crypto.Sign(stamp(message), privateKey)
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}

	// The recovery id is not part of our format, the public key travels
	// with the transaction.
	return common.Bytes2Hex(sig[:crypto.RecoveryIDOffset]), nil
}

// Verify reports whether the signature was produced over the message by the
// private key belonging to the public key.
func Verify(publicKey string, message string, sig string) bool {
	if len(publicKey) != PublicKeyLength || len(sig) != SignatureLength {
		return false
	}

	pub, err := hex.DecodeString(publicKey)
	if err != nil {
		return false
	}

	rs, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	return crypto.VerifySignature(pub, stamp(message), rs)
}

// =============================================================================

// stamp returns a 32 byte digest of the message with the ledger stamp
// embedded into the final hash.
func stamp(message string) []byte {
	msgHash := crypto.Keccak256([]byte(message))
	return crypto.Keccak256([]byte(ledgerStamp), msgHash)
}
