package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common"
)

// Account identifies a ledger participant. Accounts and band handles share the
// 20-byte Ethereum address format.
type Account = common.Address

// Handle is the fixed-width identifier of a band instance
type Handle = common.Address

// HandleLength is the length of a rendered handle: 0x followed by 40 hex characters
const HandleLength = 2 + 2*common.AddressLength

// ParseAccount parses a hex encoded address into an Account.
// Both checksummed and lower-case forms are accepted; the zero address is rejected.
func ParseAccount(s string) (Account, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return Account{}, fmt.Errorf("%w: invalid address %q", ErrInvalidInput, s)
	}

	account := common.HexToAddress(s)
	if IsZeroAddress(account) {
		return Account{}, fmt.Errorf("%w: zero address is not an account", ErrInvalidInput)
	}

	return account, nil
}

// ParseAccounts parses a list of hex encoded addresses
func ParseAccounts(addresses []string) ([]Account, error) {
	accounts := make([]Account, 0, len(addresses))
	for _, address := range addresses {
		account, err := ParseAccount(address)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// ParseHandle parses a hex encoded band handle
func ParseHandle(s string) (Handle, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return Handle{}, fmt.Errorf("%w: invalid band handle %q", ErrInvalidInput, s)
	}
	return common.HexToAddress(s), nil
}

// NormalizeAddress normalizes an address to its checksummed form
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return common.HexToAddress(address).String()
	}
	return address
}

// IsZeroAddress checks if an address is the zero address
func IsZeroAddress(address common.Address) bool {
	return address == common.Address{}
}

// ValidateName checks a band or song name. Any non-empty UTF-8 text is accepted;
// invalid byte sequences would not survive the JSON journal unchanged.
func ValidateName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s name is required", ErrInvalidInput, kind)
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("%w: %s name is not valid UTF-8", ErrInvalidInput, kind)
	}
	return nil
}
