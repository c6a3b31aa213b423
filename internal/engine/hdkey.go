package engine

import (
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/crypto"
)

// ethPurpose and ethCoin are the BIP44 purpose and coin type of Ethereum
// accounts.
const (
	ethPurpose = 44
	ethCoin    = 60
)

func hardenedKey(key uint32) uint32 {
	return key + hdkeychain.HardenedKeyStart
}

// deriveAddress returns the checksummed address of account index under
// m/44'/60'/0'/0.
func deriveAddress(seed []byte, index uint32) (string, error) {
	// The network params only set the serialization version bytes, which
	// are never used here.
	masterNode, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return "", err
	}
	defer masterNode.Zero()

	path := []uint32{hardenedKey(ethPurpose), hardenedKey(ethCoin), hardenedKey(0), 0, index}
	currentKey := masterNode
	for _, pathPart := range path {
		currentKey, err = currentKey.Derive(pathPart)
		if err != nil {
			return "", err
		}
	}
	defer currentKey.Zero()

	pub, err := currentKey.ECPubKey()
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pub.ToECDSA()).Hex(), nil
}
