package vision

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ErrNoInteger indicates the model replied with something that does not
// start with an integer, so no reading could be extracted.
var ErrNoInteger = errors.New("no integer in model response")

const extractionPrompt = "Você é um especialista em leitura de medidores. " +
	"Extraia o valor numérico inteiro da leitura de um medidor de gás ou água a partir desta imagem. " +
	"Retorne explicitamente apenas o valor numérico inteiro."

// Client wraps the OpenAI client for meter photo reading.
type Client struct {
	client *openai.Client
	model  shared.ChatModel
}

// NewClient creates the vision client.
func NewClient(apiKey, model string) *Client {
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &Client{client: &c, model: shared.ChatModel(model)}
}

// ReadMeter sends the base64 image to the vision model and parses the reply
// as the integer meter value.
func (c *Client) ReadMeter(ctx context.Context, imageBase64 string) (int64, error) {
	req := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart(extractionPrompt),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    "data:image/png;base64," + imageBase64,
							Detail: "low",
						}),
					},
				},
			},
		}},
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("openai: no choices returned")
	}

	return ParseReading(resp.Choices[0].Message.Content)
}

// ParseReading extracts the leading base10 integer from the model's reply.
// Trailing text after the digits is tolerated ("1234 m³" reads as 1234);
// a reply with no leading integer fails with ErrNoInteger.
func ParseReading(text string) (int64, error) {
	s := strings.TrimSpace(text)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, fmt.Errorf("%w: %q", ErrNoInteger, text)
	}

	value, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNoInteger, text)
	}

	return value, nil
}
