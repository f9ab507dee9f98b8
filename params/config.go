package params

import (
	"fmt"
	"strings"
)

// ClusterConfig describes one deployment of the host chain. The entropy
// bearing execution context is selected by the oracle container environment;
// the endpoints here are only consumed by the host tooling around the
// function, never by the settlement core itself.
type ClusterConfig struct {
	Name        string
	RPCEndpoint string
	WSEndpoint  string
}

var (
	// MainnetConfig targets the production cluster.
	MainnetConfig = &ClusterConfig{
		Name:        "mainnet-beta",
		RPCEndpoint: "https://api.mainnet-beta.solana.com",
		WSEndpoint:  "wss://api.mainnet-beta.solana.com",
	}

	// DevnetConfig targets the development cluster. This is the default for
	// oracle functions under test.
	DevnetConfig = &ClusterConfig{
		Name:        "devnet",
		RPCEndpoint: "https://api.devnet.solana.com",
		WSEndpoint:  "wss://api.devnet.solana.com",
	}

	// LocalnetConfig targets a local test validator.
	LocalnetConfig = &ClusterConfig{
		Name:        "localnet",
		RPCEndpoint: "http://127.0.0.1:8899",
		WSEndpoint:  "ws://127.0.0.1:8900",
	}
)

// ClusterByName resolves a cluster flag value to its configuration.
func ClusterByName(name string) (*ClusterConfig, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet", "mainnet-beta":
		return MainnetConfig, nil
	case "devnet", "":
		return DevnetConfig, nil
	case "localnet", "localhost":
		return LocalnetConfig, nil
	default:
		return nil, fmt.Errorf("unknown cluster %q", name)
	}
}

func (c *ClusterConfig) String() string {
	return c.Name
}
