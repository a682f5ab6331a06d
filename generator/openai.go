package generator

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"readme_gen/apperr"
)

// OpenAIProvider implements Provider using the official openai-go SDK (chat completions).
type OpenAIProvider struct {
	Opts []option.RequestOption
}

func newOpenAI(s Settings) (Provider, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithHTTPClient(s.httpClient()),
		// exactly one request per call
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	return &OpenAIProvider{Opts: opts}, nil
}

func (o *OpenAIProvider) Name() string { return "openai" }

func (o *OpenAIProvider) Complete(ctx context.Context, req Request) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.Prompt.System),
			openai.UserMessage(req.Prompt.User),
		},
		MaxTokens: openai.Int(int64(req.MaxTokens)),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", apperr.Provider(o.Name(), fmt.Sprintf("status %d", apiErr.StatusCode), err)
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", apperr.Provider(o.Name(), "empty choices", nil)
	}
	return resp.Choices[0].Message.Content, nil
}
