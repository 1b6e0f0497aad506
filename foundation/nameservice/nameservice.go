// Package nameservice reads a folder of account key files and creates a
// name service lookup for the accounts.
package nameservice

import (
	"crypto/ecdsa"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyExtension is the file extension of a private key file.
const KeyExtension = ".ecdsa"

// NameService maintains a map of accounts for name lookup.
type NameService struct {
	accounts map[database.PublicKey]string
	keys     map[string]*ecdsa.PrivateKey
}

// New constructs a name service with the accounts found in the root folder.
func New(root string) (*NameService, error) {
	ns := NameService{
		accounts: make(map[database.PublicKey]string),
		keys:     make(map[string]*ecdsa.PrivateKey),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != KeyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("load %s: %w", fileName, err)
		}

		pub, err := signature.PublicKey(privateKey)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(fileName), KeyExtension)
		ns.accounts[database.PublicKey(pub)] = name
		ns.keys[name] = privateKey

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified account.
func (ns *NameService) Lookup(pk database.PublicKey) string {
	name, exists := ns.accounts[pk]
	if !exists {
		return string(pk)
	}
	return name
}

// PrivateKey returns the private key loaded for the named account.
func (ns *NameService) PrivateKey(name string) (*ecdsa.PrivateKey, error) {
	key, exists := ns.keys[name]
	if !exists {
		return nil, fmt.Errorf("account %q not found", name)
	}
	return key, nil
}

// Copy returns a copy of the map of names and accounts.
func (ns *NameService) Copy() map[database.PublicKey]string {
	cpy := make(map[database.PublicKey]string, len(ns.accounts))
	for pk, name := range ns.accounts {
		cpy[pk] = name
	}
	return cpy
}
