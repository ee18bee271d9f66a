package openai

import (
	"context"
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"
	"github.com/vamm-energy/policyagent/generator"
)

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	rsp, err := g.client.CreateChatCompletion(ctx, g.request(prompt, false))
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return rsp.Choices[0].Message.Content, nil
}

func (g *openAIGenerator) Stream(ctx context.Context, prompt string) (generator.Stream, error) {
	stream, err := g.client.CreateChatCompletionStream(ctx, g.request(prompt, true))
	if err != nil {
		return nil, err
	}

	return &openAIStream{stream: stream}, nil
}

func (g *openAIGenerator) request(prompt string, stream bool) openai.ChatCompletionRequest {
	fullPrompt := prompt
	if len(g.options.PromptPrefix) > 0 {
		fullPrompt = g.options.PromptPrefix + "\n" + prompt
	}

	return openai.ChatCompletionRequest{
		Model:  g.options.Model,
		Stream: stream,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fullPrompt,
			},
		},
	}
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openAIStream) Recv() (string, error) {
	for {
		rsp, err := s.stream.Recv()
		if err != nil {
			// io.EOF passes through as end-of-stream
			return "", err
		}
		if len(rsp.Choices) == 0 {
			continue
		}
		if fragment := rsp.Choices[0].Delta.Content; len(fragment) > 0 {
			return fragment, nil
		}
	}
}

func (s *openAIStream) Close() error {
	return s.stream.Close()
}

var _ generator.Stream = (*openAIStream)(nil)
var _ io.Closer = (*openAIStream)(nil)

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	config := openai.DefaultConfig(options.ApiKey)
	if options.HttpClient != nil {
		config.HTTPClient = options.HttpClient
	}

	g.client = openai.NewClientWithConfig(config)

	return g
}
