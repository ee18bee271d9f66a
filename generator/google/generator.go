package google

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/vamm-energy/policyagent/generator"
	"google.golang.org/api/iterator"
	genaiopt "google.golang.org/api/option"
)

type googleGenerator struct {
	options generator.Options
	client  *genai.Client
}

func (g *googleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.options.Model)
	rsp, err := model.GenerateContent(ctx, genai.Text(g.fullPrompt(prompt)))
	if err != nil {
		return "", err
	}

	result := responseText(rsp)
	if len(result) == 0 {
		return "", errors.New("no response from Google")
	}

	return result, nil
}

func (g *googleGenerator) Stream(ctx context.Context, prompt string) (generator.Stream, error) {
	model := g.client.GenerativeModel(g.options.Model)
	iter := model.GenerateContentStream(ctx, genai.Text(g.fullPrompt(prompt)))

	return &googleStream{iter: iter}, nil
}

func (g *googleGenerator) fullPrompt(prompt string) string {
	if len(g.options.PromptPrefix) > 0 {
		return g.options.PromptPrefix + "\n" + prompt
	}
	return prompt
}

func responseText(rsp *genai.GenerateContentResponse) string {
	if rsp == nil || len(rsp.Candidates) == 0 || rsp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range rsp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String()
}

type googleStream struct {
	iter *genai.GenerateContentResponseIterator
}

func (s *googleStream) Recv() (string, error) {
	for {
		rsp, err := s.iter.Next()
		if errors.Is(err, iterator.Done) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if fragment := responseText(rsp); len(fragment) > 0 {
			return fragment, nil
		}
	}
}

func (s *googleStream) Close() error {
	return nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &googleGenerator{
		options: options,
	}

	client, err := genai.NewClient(
		context.Background(),
		genaiopt.WithAPIKey(options.ApiKey),
	)
	if err != nil {
		panic(err)
	}

	g.client = client

	return g
}
