package advisor

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/ghost2804/finhub/pkg/models/chat"
	"github.com/ghost2804/finhub/pkg/settings"
)

// tool round-trips per question before we give up
const maxToolHops = 4

var errEmptyResponse = errors.New("advisor: empty model response")

// Advisor answers finance questions through the Gemini API, with the quote
// lookup tool wired in and conversation history replayed per request.
type Advisor struct {
	client  *genai.Client
	model   string
	config  *genai.GenerateContentConfig
	library Library
}

// New builds an Advisor from the preset. The API key comes from settings,
// falling back to the GEMINI_API_KEY environment the SDK reads itself.
func New(ctx context.Context, preset chat.Preset, quotes QuoteSource) (*Advisor, error) {
	var cc *genai.ClientConfig
	if key := settings.Current.GeminiAPIKey; key != "" {
		cc = &genai.ClientConfig{APIKey: key}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}

	model := preset.Model
	if model == "" {
		model = settings.Current.GeminiModel
	}

	lib := []Function{NewQuoteTool(quotes)}
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{FunctionDeclarations: NewDeclaration(lib)},
		},
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemText(preset)}}},
	}
	if preset.Temperature > 0 {
		config.Temperature = genai.Ptr(preset.Temperature)
	}
	if preset.MaxTokens > 0 {
		config.MaxOutputTokens = int32(preset.MaxTokens)
	}

	return &Advisor{
		client:  client,
		model:   model,
		config:  config,
		library: NewLibrary(lib),
	}, nil
}

// Ask answers one question in the context of hist. Questions outside the
// finance domain get the standing refusal without a model call.
func (a *Advisor) Ask(ctx context.Context, hist chat.HistoryItems, question string) (string, error) {
	if !IsFinanceRelated(question) {
		return RefusalReply, nil
	}

	cs, err := a.client.Chats.Create(ctx, a.model, a.config, historyContents(hist))
	if err != nil {
		return "", err
	}

	text, err := a.send(ctx, cs, 0, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	return FormatReply(text), nil
}

// send drives one model turn, resolving tool calls until a text reply
// arrives or the hop budget runs out.
func (a *Advisor) send(ctx context.Context, cs *genai.Chat, hop int, parts ...*genai.Part) (string, error) {
	resp, err := cs.Send(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errEmptyResponse
	}

	part0 := resp.Candidates[0].Content.Parts[0]
	if part0.FunctionCall != nil {
		if hop >= maxToolHops {
			return "", errors.New("advisor: too many tool calls in one turn")
		}
		logger().Debugw("tool call", "name", part0.FunctionCall.Name, "args", part0.FunctionCall.Args)
		fresp := a.library(ctx, part0.FunctionCall)
		return a.send(ctx, cs, hop+1, &genai.Part{FunctionResponse: fresp})
	}

	return part0.Text, nil
}

// systemText folds the preset's primer messages into one system instruction.
func systemText(preset chat.Preset) string {
	parts := make([]string, 0, len(preset.Messages))
	for _, m := range preset.Messages {
		if m.Role == "" || m.Role == "system" {
			parts = append(parts, m.Content)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "You are a helpful financial advisor. Provide a clear, informative, and practical answer to each finance-related question.")
	}
	return strings.Join(parts, "\n\n")
}

// historyContents replays stored user/bot pairs as chat history.
func historyContents(hist chat.HistoryItems) []*genai.Content {
	out := make([]*genai.Content, 0, len(hist)*2)
	for _, it := range hist {
		if it.ChatItem == nil {
			continue
		}
		out = append(out,
			&genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: it.ChatItem.User}}},
			&genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: it.ChatItem.Bot}}},
		)
	}
	return out
}
