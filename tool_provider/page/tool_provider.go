package page

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	toolprovider "github.com/vamm-energy/policyagent/tool_provider"
)

type pageToolProvider struct {
	options toolprovider.Options
}

func (tp *pageToolProvider) Name() string { return "page" }

func (tp *pageToolProvider) Description() string {
	return "Fetches the full content of one page of the policy document corpus by page number."
}

func (tp *pageToolProvider) Run(ctx context.Context, input string) (string, error) {
	pageNumber, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("page number required: %w", err)
	}

	return tp.options.Assembler.PageContent(ctx, tp.options.SourceId, pageNumber)
}

func NewToolProvider(opts ...toolprovider.Option) toolprovider.ToolProvider {
	options := toolprovider.NewOptions(opts...)

	if options.Assembler == nil {
		panic("assembler is required")
	}

	return &pageToolProvider{
		options: options,
	}
}
