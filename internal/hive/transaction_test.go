package hive

import (
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"HBDSaver/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func sampleTx() *Transaction {
	return &Transaction{
		RefBlockNum:    0x1234,
		RefBlockPrefix: 0x01020304,
		Expiration:     time.Unix(1700000000, 0).UTC(),
		Operations: []model.SavingsTransfer{{
			From:   "alice",
			To:     "alice",
			Amount: model.HBD(decimal.NewFromInt(1)),
			Memo:   "auto-save:p",
		}},
	}
}

func TestTransactionMarshalBinary(t *testing.T) {
	raw, err := sampleTx().MarshalBinary()
	require.NoError(t, err)

	want := "3412" + // ref_block_num
		"04030201" + // ref_block_prefix
		"00f15365" + // expiration
		"01" + "20" + // one op, transfer_to_savings
		"05" + hex.EncodeToString([]byte("alice")) +
		"05" + hex.EncodeToString([]byte("alice")) +
		"e803000000000000" + "03" + "53424400000000" + // 1.000 SBD
		"0b" + hex.EncodeToString([]byte("auto-save:p")) +
		"00" // extensions
	assert.Equal(t, want, hex.EncodeToString(raw))
}

func TestTransactionMarshalBinary_UnsupportedSymbol(t *testing.T) {
	tx := sampleTx()
	tx.Operations[0].Amount.Symbol = model.SymbolVests
	_, err := tx.MarshalBinary()
	assert.Error(t, err)
}

func TestNewTransaction_ReferencesHeadBlock(t *testing.T) {
	props := &GlobalProperties{
		HeadBlockNumber: 0x0501ABCD,
		HeadBlockID:     "0501abcd11223344aabbccddeeff00112233445566778899",
		Time:            time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	tx, err := NewTransaction(props, time.Minute, nil)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xABCD), tx.RefBlockNum)
	assert.Equal(t, uint32(0x44332211), tx.RefBlockPrefix)
	assert.Equal(t, props.Time.Add(time.Minute), tx.Expiration)

	_, err = NewTransaction(&GlobalProperties{HeadBlockID: "zz"}, time.Minute, nil)
	assert.Error(t, err)
}

func TestTransactionMarshalJSON(t *testing.T) {
	tx := sampleTx()
	tx.Signatures = [][]byte{{0x1f, 0x01}}
	raw, err := json.Marshal(tx)
	require.NoError(t, err)

	v := gjson.ParseBytes(raw)
	assert.Equal(t, int64(0x1234), v.Get("ref_block_num").Int())
	assert.Equal(t, "2023-11-14T22:13:20", v.Get("expiration").String())
	assert.Equal(t, "transfer_to_savings", v.Get("operations.0.0").String())
	assert.Equal(t, "1.000 HBD", v.Get("operations.0.1.amount").String())
	assert.Equal(t, "auto-save:p", v.Get("operations.0.1.memo").String())
	assert.Equal(t, "[]", v.Get("extensions").Raw)
	assert.Equal(t, "1f01", v.Get("signatures.0").String())
}

func TestTransactionIDAndDigest(t *testing.T) {
	tx := sampleTx()
	id, err := tx.ID()
	require.NoError(t, err)
	assert.Len(t, id, 40)

	chainID, _ := hex.DecodeString(DefaultChainID)
	d1, err := tx.Digest(chainID)
	require.NoError(t, err)
	d2, err := tx.Digest(make([]byte, 32))
	require.NoError(t, err)
	assert.Len(t, d1, 32)
	assert.NotEqual(t, d1, d2)
}
