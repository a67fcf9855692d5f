package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/fire-pension-agent/agent/contract"
)

var (
	//go:embed template/fire.txt
	fireRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Fire string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Fire: strings.TrimSpace(fireRaw),
	}
}

func (p PromptSet) For(agentType contractx.AgentType) (string, error) {
	var prompt string
	switch agentType {
	case contractx.AgentTypeFire:
		prompt = p.Fire
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: agent=%s", contractx.ErrPromptMissing, agentType)
	}
	return prompt, nil
}
