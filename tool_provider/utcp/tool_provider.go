package utcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"

	goutcp "github.com/universal-tool-calling-protocol/go-utcp"
	toolprovider "github.com/vamm-energy/policyagent/tool_provider"
)

// utcpToolProvider dispatches to remote lookup services (permit offices,
// registries) discovered over UTCP.
type utcpToolProvider struct {
	options toolprovider.Options
	client  goutcp.UtcpClientInterface
}

func (tp *utcpToolProvider) Name() string { return "lookup" }

func (tp *utcpToolProvider) Description() string {
	return "Discovers and calls remote lookup services, such as building department and permit registries."
}

func (tp *utcpToolProvider) Run(ctx context.Context, input string) (string, error) {
	remoteTools, err := tp.client.SearchTools(input, 1)
	if err != nil {
		return "", fmt.Errorf("utcp discovery failed: %w", err)
	}

	if len(remoteTools) == 0 {
		return "", errors.New("no remote tool matched the request")
	}

	raw, err := tp.client.CallTool(ctx, remoteTools[0].Name, map[string]any{"input": input})
	if err != nil {
		return "", err
	}

	switch v := raw.(type) {
	case string:
		return v, nil
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b), nil
		}
		return fmt.Sprintf("%v", v), nil
	}
}

func (tp *utcpToolProvider) createTempConfig(addrs []string) (string, error) {
	type providerConfig struct {
		Type    string            `json:"provider_type"`
		Name    string            `json:"name"`
		URL     string            `json:"url"`
		Method  string            `json:"http_method"`
		Headers map[string]string `json:"headers"`
	}

	config := struct {
		Providers []providerConfig `json:"providers"`
	}{}

	for _, u := range addrs {
		parsed, err := url.Parse(u)
		if err != nil {
			return "", err
		}
		name := parsed.Hostname()
		config.Providers = append(config.Providers, providerConfig{
			Type:   "http",
			Name:   name,
			URL:    u,
			Method: "POST",
			Headers: map[string]string{
				"Content-Type": "application/json",
			},
		})
	}

	f, err := os.CreateTemp("", "utcp_config_*.json")
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(config); err != nil {
		return "", err
	}

	return f.Name(), nil
}

func NewToolProvider(opts ...toolprovider.Option) toolprovider.ToolProvider {
	options := toolprovider.NewOptions(opts...)

	tp := &utcpToolProvider{
		options: options,
	}

	var configPath string

	if len(options.Addrs) > 0 {
		tmpPath, err := tp.createTempConfig(options.Addrs)
		if err != nil {
			panic(err)
		}
		configPath = tmpPath
		defer os.Remove(tmpPath)
	}

	client, err := goutcp.NewUTCPClient(
		context.Background(),
		&goutcp.UtcpClientConfig{
			ProvidersFilePath: configPath,
		},
		nil,
		nil,
	)
	if err != nil {
		panic(err)
	}

	tp.client = client

	return tp
}
