package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// ErrKeyLoad indicates the configured PEM key material could not be parsed.
// The server must not start without valid keys.
var ErrKeyLoad = errors.New("key load failed")

// KeyProvider parses the configured RSA key pair on first use and caches the
// result for the process lifetime. Safe for concurrent use.
type KeyProvider struct {
	signingKey      func() (*rsa.PrivateKey, error)
	verificationKey func() (*rsa.PublicKey, error)
}

// NewKeyProvider creates a provider over PEM-encoded key material. The PEM is
// not parsed until a key is first requested.
func NewKeyProvider(privatePEM, publicPEM string) *KeyProvider {
	return &KeyProvider{
		signingKey: sync.OnceValues(func() (*rsa.PrivateKey, error) {
			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privatePEM))
			if err != nil {
				return nil, fmt.Errorf("%w: private key: %v", ErrKeyLoad, err)
			}
			return key, nil
		}),
		verificationKey: sync.OnceValues(func() (*rsa.PublicKey, error) {
			key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicPEM))
			if err != nil {
				return nil, fmt.Errorf("%w: public key: %v", ErrKeyLoad, err)
			}
			return key, nil
		}),
	}
}

// SigningKey returns the private key used to sign tokens.
func (p *KeyProvider) SigningKey() (*rsa.PrivateKey, error) {
	return p.signingKey()
}

// VerificationKey returns the public key used to verify token signatures.
func (p *KeyProvider) VerificationKey() (*rsa.PublicKey, error) {
	return p.verificationKey()
}
