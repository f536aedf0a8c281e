package savings

import "strings"

// MemoPrefix tags every transfer made by the saver. The full memo,
// MemoPrefix+permlink, is the only record that a reward was processed.
const MemoPrefix = "auto-save:"

// BuildMemo returns the memo tag for a post.
func BuildMemo(permlink string) string {
	return MemoPrefix + permlink
}

// ParsePermlinkFromMemo extracts the permlink from a memo tag.
func ParsePermlinkFromMemo(memo string) (string, bool) {
	permlink, ok := strings.CutPrefix(memo, MemoPrefix)
	if !ok || permlink == "" {
		return "", false
	}
	return permlink, true
}
