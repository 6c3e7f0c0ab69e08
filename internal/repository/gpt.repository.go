package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/ayush6624/go-chatgpt"
)

type GptRepository interface {
	ConstructScoringExpression(ctx context.Context, description string) (string, error)
}

type gptRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewGptRepository(apiKey string) (GptRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return gptRepositoryHandler{
		GptClient: client,
	}, nil
}

const prompt = `
You are helping a user construct an expression for scoring stocks in a monthly rebalanced portfolio. They will describe in English how the score should be computed. You must output a single arithmetic expression that is evaluated once per stock per month, producing the stock's score. Higher scores rank higher.

The expression may use numbers, + - * /, parentheses, and the following variables. Each variable is already normalized to [0, 1] across the month's universe, where 1 is best:

- fund_net_buying = relative change in the total value investment funds hold in the stock
- number_fund_holdings = how many funds hold the stock
- net_fund_change = funds that grew their position minus funds that shrank it
- roe = return on equity from the latest quarterly report
- revenue_growth = quarter over quarter revenue growth
- debt_to_equity = leverage ratio, clipped to [0, 2] before normalization
- cash_ratio = closeness of the cash ratio to the universe mean
- pe_score = cheapness relative to growth

functions:
- min(a, b)
- max(a, b)

Output only the expression, no commentary.

here's an example:
weigh institutional activity at 60% using mostly fund buying, and value the rest on profitability:

expected output:
0.6 * (0.8 * fund_net_buying + 0.2 * number_fund_holdings) + 0.4 * roe
`

func (h gptRepositoryHandler) ConstructScoringExpression(ctx context.Context, description string) (string, error) {
	res, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: prompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: description,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to construct scoring expression: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from gpt")
	}

	return strings.TrimSpace(res.Choices[0].Message.Content), nil
}
