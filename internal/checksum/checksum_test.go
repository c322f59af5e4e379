package checksum

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "abcdefgh12345678"

func TestPaytm_SignVerify(t *testing.T) {
	signer := NewPaytm()
	body := []byte(`{"mid":"MID123","orderId":"ORD-1","refId":"REF-1"}`)

	sig, err := signer.Sign(body, testKey)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	t.Run("SameBody", func(t *testing.T) {
		ok, err := signer.Verify(body, testKey, sig)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("DifferentBytes", func(t *testing.T) {
		// Same content, different whitespace: the gateway would reject it.
		ok, err := signer.Verify([]byte(`{"mid": "MID123","orderId":"ORD-1","refId":"REF-1"}`), testKey, sig)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("WrongKey", func(t *testing.T) {
		ok, err := signer.Verify(body, "zyxwvuts87654321", sig)
		if err == nil {
			assert.False(t, ok)
		}
	})
}

func TestPaytm_DeterministicWithFixedSalt(t *testing.T) {
	body := []byte(`{"mid":"MID123"}`)
	a := &Paytm{Rand: bytes.NewReader(bytes.Repeat([]byte{7}, 64))}
	b := &Paytm{Rand: bytes.NewReader(bytes.Repeat([]byte{7}, 64))}

	sigA, err := a.Sign(body, testKey)
	require.NoError(t, err)
	sigB, err := b.Sign(body, testKey)
	require.NoError(t, err)

	assert.Equal(t, sigA, sigB)
}

func TestPaytm_Errors(t *testing.T) {
	signer := NewPaytm()

	t.Run("EmptySecret", func(t *testing.T) {
		_, err := signer.Sign([]byte("{}"), "")
		assert.ErrorIs(t, err, ErrEmptySecret)
	})

	t.Run("InvalidKeyLength", func(t *testing.T) {
		_, err := signer.Sign([]byte("{}"), "short")
		assert.Error(t, err)
	})

	t.Run("GarbageSignature", func(t *testing.T) {
		_, err := signer.Verify([]byte("{}"), testKey, "not base64 !!")
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})
}

func TestSignerFunc(t *testing.T) {
	var s Signer = SignerFunc(func(body []byte, secret string) (string, error) {
		return secret + ":" + string(body), nil
	})

	sig, err := s.Sign([]byte("x"), "k")
	require.NoError(t, err)
	assert.Equal(t, "k:x", sig)
}
