package retrieve

import (
	"context"

	toolprovider "github.com/vamm-energy/policyagent/tool_provider"
)

type retrieveToolProvider struct {
	options toolprovider.Options
}

func (tp *retrieveToolProvider) Name() string { return "retrieve" }

func (tp *retrieveToolProvider) Description() string {
	return "Retrieves the most relevant policy document chunks for a query with RAG."
}

func (tp *retrieveToolProvider) Run(ctx context.Context, input string) (string, error) {
	return tp.options.Assembler.Assemble(ctx, input, tp.options.SourceId)
}

func NewToolProvider(opts ...toolprovider.Option) toolprovider.ToolProvider {
	options := toolprovider.NewOptions(opts...)

	if options.Assembler == nil {
		panic("assembler is required")
	}

	return &retrieveToolProvider{
		options: options,
	}
}
