package contract

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ChatAgent answers one user turn given the conversation so far and returns
// the extended history.
type ChatAgent interface {
	Reply(ctx context.Context, history []*schema.Message, userText string) (string, []*schema.Message, error)
}
