package hive

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"time"

	"HBDSaver/internal/model"

	"github.com/pkg/errors"
)

// opTransferToSavings is the transfer_to_savings operation id.
const opTransferToSavings = 32

// legacySymbols are the names assets keep in the binary transaction format.
var legacySymbols = map[string]string{
	model.SymbolHBD:  "SBD",
	model.SymbolHive: "STEEM",
}

// Transaction is an unsigned or signed transaction carrying savings transfers.
type Transaction struct {
	RefBlockNum    uint16
	RefBlockPrefix uint32
	Expiration     time.Time
	Operations     []model.SavingsTransfer
	Signatures     [][]byte
}

// NewTransaction references the head block from props and expires ttl after
// the head block time.
func NewTransaction(props *GlobalProperties, ttl time.Duration, ops []model.SavingsTransfer) (*Transaction, error) {
	id, err := hex.DecodeString(props.HeadBlockID)
	if err != nil || len(id) < 8 {
		return nil, errors.Errorf("malformed head block id %q", props.HeadBlockID)
	}
	return &Transaction{
		RefBlockNum:    uint16(props.HeadBlockNumber & 0xffff),
		RefBlockPrefix: binary.LittleEndian.Uint32(id[4:8]),
		Expiration:     props.Time.Add(ttl).UTC(),
		Operations:     ops,
	}, nil
}

// MarshalBinary serializes the transaction without its signatures.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	var b []byte
	b = binary.LittleEndian.AppendUint16(b, tx.RefBlockNum)
	b = binary.LittleEndian.AppendUint32(b, tx.RefBlockPrefix)
	b = binary.LittleEndian.AppendUint32(b, uint32(tx.Expiration.Unix()))

	b = binary.AppendUvarint(b, uint64(len(tx.Operations)))
	for _, op := range tx.Operations {
		b = binary.AppendUvarint(b, opTransferToSavings)
		b = appendString(b, op.From)
		b = appendString(b, op.To)
		var err error
		if b, err = appendAsset(b, op.Amount); err != nil {
			return nil, err
		}
		b = appendString(b, op.Memo)
	}

	// extensions
	b = binary.AppendUvarint(b, 0)
	return b, nil
}

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func appendAsset(b []byte, a model.Asset) ([]byte, error) {
	symbol, ok := legacySymbols[a.Symbol]
	if !ok {
		return nil, errors.Errorf("unsupported asset symbol %q", a.Symbol)
	}
	units := a.Amount.Shift(model.AssetPrecision).Round(0).IntPart()
	b = binary.LittleEndian.AppendUint64(b, uint64(units))
	b = append(b, model.AssetPrecision)
	var sym [7]byte
	copy(sym[:], symbol)
	return append(b, sym[:]...), nil
}

// Digest is the hash that gets signed: sha256(chainID || transaction).
func (tx *Transaction) Digest(chainID []byte) ([]byte, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, err
	}
	h := sha256.Sum256(append(bytes.Clone(chainID), raw...))
	return h[:], nil
}

// ID is the transaction id: the first 20 bytes of sha256(transaction), hex.
func (tx *Transaction) ID() (string, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(raw)
	return hex.EncodeToString(h[:20]), nil
}

// Sign appends a signature made with key over the chain-bound digest.
func (tx *Transaction) Sign(key *PrivateKey, chainID []byte) error {
	digest, err := tx.Digest(chainID)
	if err != nil {
		return err
	}
	sig, err := key.SignDigest(digest)
	if err != nil {
		return err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return nil
}

// MarshalJSON renders the transaction in the condenser_api format.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	ops := make([][2]any, len(tx.Operations))
	for i, op := range tx.Operations {
		ops[i] = [2]any{model.KindTransferToSavings, map[string]string{
			"from":   op.From,
			"to":     op.To,
			"amount": op.Amount.String(),
			"memo":   op.Memo,
		}}
	}
	sigs := make([]string, len(tx.Signatures))
	for i, s := range tx.Signatures {
		sigs[i] = hex.EncodeToString(s)
	}
	return json.Marshal(struct {
		RefBlockNum    uint16   `json:"ref_block_num"`
		RefBlockPrefix uint32   `json:"ref_block_prefix"`
		Expiration     string   `json:"expiration"`
		Operations     [][2]any `json:"operations"`
		Extensions     []any    `json:"extensions"`
		Signatures     []string `json:"signatures"`
	}{
		RefBlockNum:    tx.RefBlockNum,
		RefBlockPrefix: tx.RefBlockPrefix,
		Expiration:     tx.Expiration.UTC().Format(timeLayout),
		Operations:     ops,
		Extensions:     []any{},
		Signatures:     sigs,
	})
}
