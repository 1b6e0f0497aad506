package database

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"

	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
)

// ErrAuthentication is returned when a transaction can't be signed with
// the provided private key.
var ErrAuthentication = errors.New("authentication failure")

// PublicKey is the hex encoded compressed public key of an account.
type PublicKey string

// IsPublicKey checks the public key has the expected encoded length.
func (pk PublicKey) IsPublicKey() bool {
	return len(pk) == signature.PublicKeyLength
}

// =============================================================================

// Tx is the transactional information between two parties. A transaction
// without a source mints new funds for the recipient and is how miners are
// rewarded.
type Tx struct {
	Source    Optional[PublicKey] `json:"source"`    // Empty for a reward transaction.
	Recipient PublicKey           `json:"recipient"` // Account receiving the amount.
	Amount    int64               `json:"amount"`    // Monetary value moved by this transaction.
	Signature string              `json:"signature"` // [R|S] signature over Message.
}

// NewTx constructs and signs a new transaction. If the recipient is not set
// this is a reward transaction: there is no source and the funds go to the
// owner of the private key.
func NewTx(privateKey *ecdsa.PrivateKey, recipient Optional[PublicKey], amount int64) (Tx, error) {
	pub, err := signature.PublicKey(privateKey)
	if err != nil {
		return Tx{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	tx := Tx{
		Recipient: PublicKey(pub),
		Amount:    amount,
	}

	if to, ok := recipient.Get(); ok {
		tx.Source = Some(PublicKey(pub))
		tx.Recipient = to
	}

	sig, err := signature.Sign(privateKey, tx.Message())
	if err != nil {
		return Tx{}, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	tx.Signature = sig

	return tx, nil
}

// NewRewardTx constructs a transaction minting the amount to the owner of
// the private key.
func NewRewardTx(privateKey *ecdsa.PrivateKey, amount int64) (Tx, error) {
	return NewTx(privateKey, None[PublicKey](), amount)
}

// Message returns the exact content that is signed: source, recipient and
// amount concatenated in that order.
func (tx Tx) Message() string {
	return tx.Source.String() + string(tx.Recipient) + strconv.FormatInt(tx.Amount, 10)
}

// IsReward reports whether this transaction mints new funds.
func (tx Tx) IsReward() bool {
	return !tx.Source.IsSet()
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%d", short(tx.Source.String()), short(string(tx.Recipient)), tx.Amount)
}

// short trims long hex values for log output.
func short(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
