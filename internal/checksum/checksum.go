// Package checksum signs gateway request bodies.
//
// The gateway treats the signature as opaque: it decrypts it with the merchant
// key and compares the embedded hash against its own hash of the body it
// received. The body bytes passed to Sign must therefore be the exact bytes
// that go on the wire.
package checksum

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	saltLength  = 4
	saltCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuvwxyz"
)

// iv is fixed by the gateway's checksum scheme.
var iv = []byte("@@@@&&&&####$$$$")

var (
	ErrEmptySecret      = errors.New("checksum: signing secret is empty")
	ErrMalformedPayload = errors.New("checksum: malformed signature")
)

// Signer produces the head signature for a serialized request body.
type Signer interface {
	Sign(body []byte, secret string) (string, error)
}

// SignerFunc adapts a plain function to Signer.
type SignerFunc func(body []byte, secret string) (string, error)

func (f SignerFunc) Sign(body []byte, secret string) (string, error) { return f(body, secret) }

// Paytm implements the gateway's AES checksum. Rand supplies the salt; nil
// means crypto/rand.
type Paytm struct {
	Rand io.Reader
}

func NewPaytm() *Paytm { return &Paytm{} }

func (p *Paytm) Sign(body []byte, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	salt, err := p.salt()
	if err != nil {
		return "", fmt.Errorf("checksum: generate salt: %w", err)
	}
	return encrypt([]byte(hashWithSalt(body, salt)), secret)
}

// Verify reports whether signature was produced for body with secret.
func (p *Paytm) Verify(body []byte, secret, signature string) (bool, error) {
	if secret == "" {
		return false, ErrEmptySecret
	}
	plain, err := decrypt(signature, secret)
	if err != nil {
		return false, err
	}
	if len(plain) < saltLength {
		return false, ErrMalformedPayload
	}
	salt := string(plain[len(plain)-saltLength:])
	return string(plain) == hashWithSalt(body, salt), nil
}

func (p *Paytm) salt() (string, error) {
	r := p.Rand
	if r == nil {
		r = rand.Reader
	}
	max := big.NewInt(int64(len(saltCharset)))
	out := make([]byte, saltLength)
	for i := range out {
		n, err := rand.Int(r, max)
		if err != nil {
			return "", err
		}
		out[i] = saltCharset[n.Int64()]
	}
	return string(out), nil
}

func hashWithSalt(body []byte, salt string) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte("|" + salt))
	return hex.EncodeToString(h.Sum(nil)) + salt
}

func encrypt(plain []byte, secret string) (string, error) {
	block, err := aes.NewCipher([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("checksum: %w", err)
	}
	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)
	return base64.StdEncoding.EncodeToString(out), nil
}

func decrypt(signature, secret string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	block, err := aes.NewCipher([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("checksum: %w", err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, ErrMalformedPayload
	}
	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, raw)
	return pkcs7Unpad(out)
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, ErrMalformedPayload
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, ErrMalformedPayload
		}
	}
	return b[:len(b)-n], nil
}
