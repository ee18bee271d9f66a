package pages

import (
	"context"
	"fmt"
	"strings"

	toolprovider "github.com/vamm-energy/policyagent/tool_provider"
)

type pagesToolProvider struct {
	options toolprovider.Options
}

func (tp *pagesToolProvider) Name() string { return "pages" }

func (tp *pagesToolProvider) Description() string {
	return "Lists the page numbers available in the policy document corpus."
}

func (tp *pagesToolProvider) Run(ctx context.Context, input string) (string, error) {
	pages, err := tp.options.Assembler.ListPages(ctx, tp.options.SourceId)
	if err != nil {
		return "", err
	}

	if len(pages) == 0 {
		return "No pages available.", nil
	}

	rendered := make([]string, 0, len(pages))
	for _, page := range pages {
		rendered = append(rendered, fmt.Sprintf("%d", page))
	}

	return "Available pages: " + strings.Join(rendered, ", "), nil
}

func NewToolProvider(opts ...toolprovider.Option) toolprovider.ToolProvider {
	options := toolprovider.NewOptions(opts...)

	if options.Assembler == nil {
		panic("assembler is required")
	}

	return &pagesToolProvider{
		options: options,
	}
}
