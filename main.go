package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	firechat "github.com/tanpawarit/fire-pension-agent/agent/agents/fire"
	contractx "github.com/tanpawarit/fire-pension-agent/agent/contract"
	firex "github.com/tanpawarit/fire-pension-agent/agent/fire"
	llmx "github.com/tanpawarit/fire-pension-agent/agent/llm"
	promptx "github.com/tanpawarit/fire-pension-agent/agent/prompt"
	businesslogicx "github.com/tanpawarit/fire-pension-agent/pkg/businesslogic"
	configx "github.com/tanpawarit/fire-pension-agent/pkg/config"
	logx "github.com/tanpawarit/fire-pension-agent/pkg/logger"
	_ "github.com/tanpawarit/fire-pension-agent/pkg/logger/autoload"
)

const greeting = "Hej! Jeg hjælper dig med at lægge en FIRE-plan for din pension. Hvor gammel er du?"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid openrouter config")
	}
	blCfg := configx.MustNew[businesslogicx.Config]("BUSINESSLOGIC")

	modelCfg := llmCfg.OpenRouterFor(contractx.AgentTypeFire)
	chatModel, err := modelCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("create chat model")
	}

	calc, err := firex.NewCalculator(businesslogicx.MustNew(*blCfg))
	if err != nil {
		log.Fatal().Err(err).Msg("create calculator")
	}

	systemPrompt, err := promptx.LoadPromptSet().For(contractx.AgentTypeFire)
	if err != nil {
		log.Fatal().Err(err).Msg("load prompt")
	}

	agent, err := firechat.New(ctx, chatModel, systemPrompt, calc)
	if err != nil {
		log.Fatal().Err(err).Msg("create fire agent")
	}

	ctx = logx.WithFields(ctx, map[string]any{"session_id": uuid.NewString()})
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	if err := chat(ctx, agent, os.Stdin, os.Stdout, interactive); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("chat stopped")
	}
}

// chat runs a line-based conversation until EOF, "exit" or ctx is done. A
// failed turn is reported and the conversation continues with its history.
// The "> " prompt is only printed when interactive.
func chat(ctx context.Context, agent contractx.ChatAgent, in io.Reader, out io.Writer, interactive bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := logx.FromContext(ctx)
	prompt := func() {
		if interactive {
			fmt.Fprint(out, "> ")
		}
	}

	history := []*schema.Message{schema.AssistantMessage(greeting, nil)}
	fmt.Fprintln(out, greeting)
	prompt()

	lines, scanErr := readLines(ctx, in)
	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = l
		}

		text := strings.TrimSpace(line)
		switch {
		case text == "":
			prompt()
			continue
		case strings.EqualFold(text, "exit"), strings.EqualFold(text, "quit"):
			return nil
		}

		reply, updated, err := agent.Reply(ctx, history, text)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Error().Err(err).Msg("agent reply failed")
			fmt.Fprintln(out, firex.MessageUnexpected)
			prompt()
			continue
		}
		history = updated
		fmt.Fprintln(out, reply)
		prompt()
	}
}

// readLines scans in on its own goroutine so a blocked read never delays
// cancellation. The error channel receives exactly one value before lines is
// closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
