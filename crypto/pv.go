package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	eth_crypto "github.com/ethereum/go-ethereum/crypto"
)

// PV is a member's signing key loaded from a hex key file.
type PV struct {
	privateKey *ecdsa.PrivateKey
}

func GenerateToFile(keyFilePath string) (*PV, error) {
	priv, err := eth_crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	d := eth_crypto.FromECDSA(priv)
	err = os.WriteFile(keyFilePath, []byte(hex.EncodeToString(d)), 0o600)
	if err != nil {
		return nil, err
	}
	return &PV{privateKey: priv}, nil
}

func LoadFilePV(keyFilePath string) (*PV, error) {
	dat, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, err
	}
	priv, err := eth_crypto.HexToECDSA(strings.TrimSpace(string(dat)))
	if err != nil {
		return nil, fmt.Errorf("reading key from %v: %w", keyFilePath, err)
	}
	return &PV{privateKey: priv}, nil
}

func (k *PV) Address() common.Address {
	return eth_crypto.PubkeyToAddress(k.privateKey.PublicKey)
}

// Sign produces a 65-byte recoverable signature over keccak256(data).
func (k *PV) Sign(data []byte) ([]byte, error) {
	return eth_crypto.Sign(eth_crypto.Keccak256(data), k.privateKey)
}
