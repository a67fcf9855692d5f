package fire

import (
	"context"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	json "github.com/goccy/go-json"
	contractx "github.com/tanpawarit/fire-pension-agent/agent/contract"
	toolx "github.com/tanpawarit/fire-pension-agent/agent/tool"
	logx "github.com/tanpawarit/fire-pension-agent/pkg/logger"
)

// MaxToolRounds bounds how many times one turn may go back to the model
// with tool output.
const MaxToolRounds = 4

var _ contractx.ChatAgent = (*Agent)(nil)

// Agent runs the FIRE conversation: it collects the nine inputs from the
// user and hands them to the calculator tool.
type Agent struct {
	systemPrompt string
	runner       compose.Runnable[[]*schema.Message, *schema.Message]
	execute      toolx.Executor
	allowedTools map[string]struct{}
}

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	calc toolx.Calculator,
) (*Agent, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, fmt.Errorf("%w: agent=%s", contractx.ErrPromptMissing, contractx.AgentTypeFire)
	}
	if calc == nil {
		return nil, errors.New("calculator is required")
	}

	tools, executor := toolx.BuildForAgent(contractx.AgentTypeFire, calc)
	toolModel, err := chatModel.WithTools(tools)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, contractx.AgentTypeFire, err)
	}

	runner, err := compileChatGraph(ctx, toolModel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	allowedTools := make(map[string]struct{}, len(tools))
	for _, t := range tools {
		if t == nil || strings.TrimSpace(t.Name) == "" {
			continue
		}
		allowedTools[t.Name] = struct{}{}
	}

	return &Agent{
		systemPrompt: systemPrompt,
		runner:       runner,
		execute:      executor,
		allowedTools: allowedTools,
	}, nil
}

// Reply answers one user turn. history holds the earlier turns without the
// system prompt; the returned slice extends it with this turn. On error the
// original history is returned unchanged.
func (a *Agent) Reply(ctx context.Context, history []*schema.Message, userText string) (string, []*schema.Message, error) {
	text := strings.TrimSpace(userText)
	if text == "" {
		return "", history, fmt.Errorf("%w: user message is required", contractx.ErrValidation)
	}

	logger := logx.FromContext(ctx)
	conversation := make([]*schema.Message, 0, len(history)+4)
	conversation = append(conversation, history...)
	conversation = append(conversation, schema.UserMessage(text))

	var lastToolOutput string
	for round := 0; round <= MaxToolRounds; round++ {
		input := make([]*schema.Message, 0, len(conversation)+1)
		input = append(input, schema.SystemMessage(a.systemPrompt))
		input = append(input, conversation...)

		msg, err := a.runner.Invoke(ctx, input)
		if err != nil {
			return "", history, fmt.Errorf("%w: fire agent invoke: %v", contractx.ErrModelInvoke, err)
		}
		if msg == nil {
			return "", history, fmt.Errorf("%w: empty model response", contractx.ErrSchemaViolation)
		}

		requests, err := toToolRequests(msg.ToolCalls)
		if err != nil {
			return "", history, err
		}

		if len(requests) == 0 {
			reply := strings.TrimSpace(msg.Content)
			if reply == "" {
				reply = lastToolOutput
			}
			if reply == "" {
				return "", history, fmt.Errorf("%w: model returned neither text nor tool calls", contractx.ErrSchemaViolation)
			}
			conversation = append(conversation, schema.AssistantMessage(reply, nil))
			return reply, conversation, nil
		}
		if round == MaxToolRounds {
			break
		}

		conversation = append(conversation, msg)
		for _, req := range requests {
			if _, ok := a.allowedTools[req.Tool]; !ok {
				return "", history, fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contractx.ErrSchemaViolation, req.Tool, contractx.AgentTypeFire)
			}

			res, err := a.execute(ctx, req.Tool, req.Args)
			if err != nil {
				return "", history, fmt.Errorf("execute tool=%s: %w", req.Tool, err)
			}
			logger.Debug().Str("tool", req.Tool).Int("round", round).Msg("tool executed")

			lastToolOutput = res.Content()
			conversation = append(conversation, schema.ToolMessage(lastToolOutput, req.ID))
		}
	}

	return "", history, fmt.Errorf("%w: tool loop exceeded %d rounds", contractx.ErrSchemaViolation, MaxToolRounds)
}

func toToolRequests(calls []schema.ToolCall) ([]contractx.ToolRequest, error) {
	if len(calls) == 0 {
		return nil, nil
	}
	reqs := make([]contractx.ToolRequest, 0, len(calls))
	for _, call := range calls {
		tool := strings.TrimSpace(call.Function.Name)
		if tool == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrSchemaViolation)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, tool, err)
			}
		}

		reqs = append(reqs, contractx.ToolRequest{
			ID:   call.ID,
			Tool: tool,
			Args: args,
		})
	}
	return reqs, nil
}
