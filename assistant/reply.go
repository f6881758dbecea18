package assistant

// ReplyKind tags a generated reply so callers can tell genuine content from
// degraded placeholder content without matching on strings.
type ReplyKind string

const (
	ReplyOK       ReplyKind = "ok"
	ReplyNoReply  ReplyKind = "no_reply"
	ReplyFailed   ReplyKind = "assistant_failed"
	ReplyCommErr  ReplyKind = "comm_error"
	ReplyTimedOut ReplyKind = "timeout"
)

// Sentinel texts returned in place of a real reply when generation degrades.
// The conversation log must never have a hole for a turn the user is
// waiting on, so failures become visible placeholder replies instead of
// errors.
const (
	sentinelNoReply  = "[No assistant reply found.]"
	sentinelFailed   = "[Assistant failed to generate a response.]"
	sentinelCommErr  = "[Error communicating with Assistant API.]"
	sentinelTimedOut = "[Assistant timed out before completing a response.]"
)

// Reply is the outcome of one generation attempt.
type Reply struct {
	Kind ReplyKind
	Text string
}

// OK reports whether the reply carries genuine assistant content.
func (r Reply) OK() bool { return r.Kind == ReplyOK }

// Usage holds the token figures reported by the assistant run. All zeros
// when the external service omits usage reporting or the run degraded.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

func noReply() (Reply, Usage) {
	return Reply{Kind: ReplyNoReply, Text: sentinelNoReply}, Usage{}
}

func failed() (Reply, Usage) {
	return Reply{Kind: ReplyFailed, Text: sentinelFailed}, Usage{}
}

func commError() (Reply, Usage) {
	return Reply{Kind: ReplyCommErr, Text: sentinelCommErr}, Usage{}
}

func timedOut() (Reply, Usage) {
	return Reply{Kind: ReplyTimedOut, Text: sentinelTimedOut}, Usage{}
}
