package hive

import (
	"bytes"
	"crypto/sha256"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const wifVersion = 0x80

// maxSignAttempts bounds the search for a canonical signature. Each attempt
// succeeds about half the time.
const maxSignAttempts = 256

// PrivateKey is a secp256k1 key decoded from WIF.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// DecodeWIF decodes a wallet import format private key.
func DecodeWIF(wif string) (*PrivateKey, error) {
	raw, err := base58.Decode(wif)
	if err != nil {
		return nil, errors.Wrap(err, "decode wif")
	}
	if len(raw) != 37 {
		return nil, errors.Errorf("decode wif: unexpected length %d", len(raw))
	}
	if raw[0] != wifVersion {
		return nil, errors.Errorf("decode wif: unexpected version byte 0x%02x", raw[0])
	}
	first := sha256.Sum256(raw[:33])
	second := sha256.Sum256(first[:])
	if !bytes.Equal(second[:4], raw[33:]) {
		return nil, errors.New("decode wif: checksum mismatch")
	}

	key := secp256k1.PrivKeyFromBytes(raw[1:33])
	if key.Key.IsZero() {
		return nil, errors.New("decode wif: zero key")
	}
	return &PrivateKey{key: key}, nil
}

// PubKey returns the public half of the key.
func (k *PrivateKey) PubKey() *secp256k1.PublicKey {
	return k.key.PubKey()
}

// SignDigest returns a 65-byte compact recoverable signature of a 32-byte
// digest. The chain only accepts canonical signatures, so the nonce is
// re-derived with extra entropy until one is produced.
func (k *PrivateKey) SignDigest(digest []byte) ([]byte, error) {
	if len(digest) != 32 {
		return nil, errors.Errorf("sign: digest must be 32 bytes, got %d", len(digest))
	}
	for attempt := 1; attempt <= maxSignAttempts; attempt++ {
		extra := sha256.Sum256(append(bytes.Clone(digest), byte(attempt)))
		sig, ok := signCompact(k.key, digest, extra[:])
		if ok && isCanonical(sig) {
			return sig, nil
		}
	}
	return nil, errors.New("sign: no canonical signature found")
}

// signCompact is RFC6979 ECDSA with extra nonce data, encoded as
// [27+4+recovery id, r, s] for a compressed public key.
func signCompact(key *secp256k1.PrivateKey, hash, extra []byte) ([]byte, bool) {
	priv := key.Key.Bytes()
	k := secp256k1.NonceRFC6979(priv[:], hash, extra, nil, 0)

	var R secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &R)
	R.ToAffine()

	var r secp256k1.ModNScalar
	overflow := r.SetBytes(R.X.Bytes())
	if r.IsZero() {
		return nil, false
	}
	recovery := byte(overflow << 1)
	if R.Y.IsOdd() {
		recovery |= 1
	}

	var e secp256k1.ModNScalar
	e.SetByteSlice(hash)
	kinv := new(secp256k1.ModNScalar).InverseValNonConst(k)
	s := new(secp256k1.ModNScalar).Mul2(&key.Key, &r).Add(&e).Mul(kinv)
	if s.IsZero() {
		return nil, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
		recovery ^= 1
	}

	sig := make([]byte, 65)
	sig[0] = 27 + 4 + recovery
	rb, sb := r.Bytes(), s.Bytes()
	copy(sig[1:33], rb[:])
	copy(sig[33:65], sb[:])
	return sig, true
}

// isCanonical applies the chain's rule that neither r nor s may have its high
// bit set or carry a redundant leading zero byte.
func isCanonical(sig []byte) bool {
	return sig[1]&0x80 == 0 &&
		!(sig[1] == 0 && sig[2]&0x80 == 0) &&
		sig[33]&0x80 == 0 &&
		!(sig[33] == 0 && sig[34]&0x80 == 0)
}
