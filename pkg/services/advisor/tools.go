package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/ghost2804/finhub/pkg/models/market"
)

// QuoteSource supplies the live quote the lookup tool serves to the model.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) (market.Quote, error)
}

type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

type Function interface {
	// Declare this function
	Declaration() *genai.FunctionDeclaration
	// Call this function
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary dispatches function calls by name.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, e := range functions {
			d := e.Declaration()
			if d.Name == call.Name {
				return e.Call(ctx, call.ID, call.Args)
			}
		}
		return &genai.FunctionResponse{
			ID:   call.ID,
			Name: call.Name,
			Response: map[string]any{
				"error": fmt.Sprintf("unknown function %s", call.Name),
			},
		}
	}
}

func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, e := range functions {
		result = append(result, e.Declaration())
	}
	return result
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// NewQuoteTool lets the model look up a live quote while answering, so
// price questions get grounded numbers instead of guesses.
func NewQuoteTool(src QuoteSource) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Quote",
			Description: `Quote returns the latest price and day change for one stock symbol.
			Use it whenever the user asks about a current price or today's movement.
			US symbols are bare ("AAPL"), Indian NSE symbols carry the suffix ("TCS.NSE").`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"symbol": {
						Type:        genai.TypeString,
						Description: "The stock symbol to look up.",
					},
				},
				Required: []string{"symbol"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "One line with name, latest price and day change for the symbol.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			fresp := &genai.FunctionResponse{ID: id, Name: "Quote"}

			symbol, ok := args["symbol"].(string)
			if !ok {
				fresp.Response = map[string]any{
					"error": fmt.Sprintf("argument 'symbol' is not a string but %T", args["symbol"]),
				}
				return fresp
			}

			quote, err := src.Quote(ctx, symbol)
			if err != nil {
				fresp.Response = map[string]any{"error": err.Error()}
				return fresp
			}

			fresp.Response = map[string]any{
				"output": FormatQuote(symbol, quote),
			}
			return fresp
		},
	}
}

// FormatQuote renders one quote as the single line the tool reports.
func FormatQuote(symbol string, q market.Quote) string {
	return fmt.Sprintf("%s (%s): price %.2f, change %+.2f (%+.2f%%)",
		q.Name, symbol, q.Price, q.Change, q.ChangePercent)
}
