package types

import (
	"crypto/sha256"
	"fmt"

	"github.com/cosmos/cosmos-sdk/types/bech32"
)

// IntermediarySenderPrefix is hashed to domain separate intermediary sender addresses.
const IntermediarySenderPrefix = "ibc-wasm-hook-intermediary"

// DeriveIntermediateSender returns the address the ibc hooks middleware on the
// proxy's chain executes as when originalSender calls in over channel. The
// address is SHA256(SHA256(IntermediarySenderPrefix) || channel/originalSender),
// bech32 encoded with bech32Prefix.
func DeriveIntermediateSender(channel, originalSender, bech32Prefix string) (string, error) {
	senderPath := fmt.Sprintf("%s/%s", channel, originalSender)
	senderHash := PrefixedSHA256(IntermediarySenderPrefix, senderPath)

	return bech32.ConvertAndEncode(bech32Prefix, senderHash[:])
}

// PrefixedSHA256 hashes address after the SHA256 digest of prefix. It is not an HMAC.
func PrefixedSHA256(prefix, address string) [32]byte {
	prefixHash := sha256.Sum256([]byte(prefix))

	preImage := make([]byte, 0, len(prefixHash)+len(address))
	preImage = append(preImage, prefixHash[:]...)
	preImage = append(preImage, address...)

	return sha256.Sum256(preImage)
}
