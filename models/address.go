package models

import (
	"github.com/go-errors/errors"
	"github.com/stellar/go/strkey"
)

// ValidateAddress checks that an address is a well-formed ed25519 account id.
// The contract core treats addresses as opaque strings; validation belongs to
// the host adapter boundary.
func ValidateAddress(address string) error {
	_, err := strkey.Decode(strkey.VersionByteAccountID, address)
	if err != nil {
		return errors.Errorf("invalid address %q: %v", address, err)
	}
	return nil
}
