package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/fire-pension-agent/agent/contract"
	firex "github.com/tanpawarit/fire-pension-agent/agent/fire"
)

const (
	ToolFireCalculator = "fire_calculator"
)

type Executor func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error)

// Calculator runs the FIRE calculation for raw tool arguments and always
// answers with a message.
type Calculator interface {
	CalculateArgs(ctx context.Context, args map[string]any) string
}

var _ Calculator = (*firex.Calculator)(nil)

func BuildForAgent(agentType contractx.AgentType, calc Calculator) ([]*schema.ToolInfo, Executor) {
	return infosForAgent(agentType), NewExecutor(agentType, calc)
}

func NewExecutor(agentType contractx.AgentType, calc Calculator) Executor {
	fallback := DefaultExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contractx.ToolResult, error) {
		switch {
		case tool == ToolFireCalculator && agentType == contractx.AgentTypeFire && calc != nil:
			return contractx.ToolResult{
				Tool:   tool,
				Result: calc.CalculateArgs(ctx, args),
			}, nil
		default:
			return fallback(ctx, tool, args)
		}
	}
}

func DefaultExecutor(agentType contractx.AgentType) Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", tool, agentType),
		}, nil
	}
}

func infosForAgent(agentType contractx.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contractx.AgentTypeFire:
		return []*schema.ToolInfo{FireCalculatorInfo()}
	default:
		return nil
	}
}

// FireCalculatorInfo describes the calculator to the model. Every parameter
// is required.
func FireCalculatorInfo() *schema.ToolInfo {
	params := make(map[string]*schema.ParameterInfo, len(firex.Fields))
	for _, f := range firex.Fields {
		dataType := schema.Number
		if f.Integer {
			dataType = schema.Integer
		}
		params[f.Name] = &schema.ParameterInfo{
			Type:     dataType,
			Desc:     f.Desc,
			Required: true,
		}
	}

	return &schema.ToolInfo{
		Name: ToolFireCalculator,
		Desc: "Calculate the user's FIRE pension plan: how much to save per year and the projected net free funds at age 95. " +
			"Returns a message ready to show the user, or a list of invalid inputs.",
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
}
