package hive

import (
	"context"
	"strings"
	"time"

	"HBDSaver/internal/model"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// timeLayout is the chain's timestamp format; values are UTC without a zone.
const timeLayout = "2006-01-02T15:04:05"

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, strings.TrimSuffix(s, "Z"))
}

// GetAccountHistory calls condenser_api.get_account_history. Entries come back
// in ascending index order.
func (c *Client) GetAccountHistory(ctx context.Context, account string, start int64, limit int) ([]model.Operation, error) {
	result, err := c.call(ctx, "condenser_api.get_account_history", []any{account, start, limit})
	if err != nil {
		return nil, err
	}
	if !result.IsArray() {
		return nil, errors.Errorf("get_account_history: unexpected result %s", truncate(result.Raw))
	}

	entries := result.Array()
	ops := make([]model.Operation, 0, len(entries))
	for _, entry := range entries {
		op, err := parseHistoryEntry(entry)
		if err != nil {
			return nil, errors.Wrap(err, "get_account_history")
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseHistoryEntry decodes one [index, {timestamp, op, ...}] pair. Both the
// legacy [type, payload] op shape and the {type, value} shape are accepted.
func parseHistoryEntry(entry gjson.Result) (model.Operation, error) {
	idx := entry.Get("0")
	body := entry.Get("1")
	if !idx.Exists() || !body.IsObject() {
		return model.Operation{}, errors.Errorf("malformed history entry %s", truncate(entry.Raw))
	}

	ts, err := parseTime(body.Get("timestamp").String())
	if err != nil {
		return model.Operation{}, errors.Wrapf(err, "entry %d timestamp", idx.Int())
	}

	op := body.Get("op")
	var kind, payload string
	if op.IsArray() {
		kind, payload = op.Get("0").String(), op.Get("1").Raw
	} else {
		kind, payload = strings.TrimSuffix(op.Get("type").String(), "_operation"), op.Get("value").Raw
	}
	if kind == "" {
		return model.Operation{}, errors.Errorf("entry %d has no operation type", idx.Int())
	}

	return model.Operation{
		Index:     idx.Int(),
		Timestamp: ts,
		Kind:      kind,
		Payload:   []byte(payload),
		TrxID:     body.Get("trx_id").String(),
		Block:     body.Get("block").Int(),
	}, nil
}

// GetContent calls condenser_api.get_content.
func (c *Client) GetContent(ctx context.Context, author, permlink string) (*model.Content, error) {
	result, err := c.call(ctx, "condenser_api.get_content", []any{author, permlink})
	if err != nil {
		return nil, err
	}
	return &model.Content{
		Author:       author,
		Permlink:     permlink,
		ParentAuthor: result.Get("parent_author").String(),
	}, nil
}

// GlobalProperties is the part of the dynamic global properties needed to
// reference a recent block in a transaction.
type GlobalProperties struct {
	HeadBlockNumber uint32
	HeadBlockID     string
	Time            time.Time
}

// GetDynamicGlobalProperties calls condenser_api.get_dynamic_global_properties.
func (c *Client) GetDynamicGlobalProperties(ctx context.Context) (*GlobalProperties, error) {
	result, err := c.call(ctx, "condenser_api.get_dynamic_global_properties", []any{})
	if err != nil {
		return nil, err
	}
	ts, err := parseTime(result.Get("time").String())
	if err != nil {
		return nil, errors.Wrap(err, "dynamic global properties time")
	}
	return &GlobalProperties{
		HeadBlockNumber: uint32(result.Get("head_block_number").Uint()),
		HeadBlockID:     result.Get("head_block_id").String(),
		Time:            ts,
	}, nil
}

func truncate(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
