package model

import (
	"time"

	"github.com/tidwall/gjson"
)

// Operation kinds used by the saver. Names follow the chain's operation names
// without the "_operation" suffix.
const (
	KindAuthorReward      = "author_reward"
	KindTransferToSavings = "transfer_to_savings"
)

// Operation is one entry of an account's operation history.
type Operation struct {
	Index     int64
	Timestamp time.Time // UTC
	Kind      string
	Payload   []byte // raw JSON body of the operation
	TrxID     string
	Block     int64
}

// Field returns the payload value at the given gjson path as a string.
func (o Operation) Field(path string) string {
	return gjson.GetBytes(o.Payload, path).String()
}

// AssetField parses the payload value at path as an Asset. Both the legacy
// "1.000 HBD" text form and the NAI object form are accepted.
func (o Operation) AssetField(path string) (Asset, error) {
	return ParseAssetJSON(gjson.GetBytes(o.Payload, path))
}

// Content is the subset of a post the locator needs.
type Content struct {
	Author       string
	Permlink     string
	ParentAuthor string
}

// IsReply reports whether the content is a comment rather than a top-level post.
func (c *Content) IsReply() bool {
	return c.ParentAuthor != ""
}
