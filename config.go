package stablecoin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"gopkg.in/yaml.v3"

	stablecoingen "github.com/krazyTry/stablecoin-go/gen/stablecoin"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config selects the cluster and deployment a client talks to.
type Config struct {
	// RPCEndpoint is the JSON-RPC URL. Defaults to devnet.
	RPCEndpoint string `yaml:"rpc_endpoint"`

	// WSEndpoint is the websocket URL used to wait for confirmations.
	WSEndpoint string `yaml:"ws_endpoint"`

	// ProgramID is the base58 address of the deployed program.
	ProgramID string `yaml:"program_id,omitempty"`

	// Simulate makes operations simulate instead of send.
	Simulate bool `yaml:"simulate,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		RPCEndpoint: rpc.DevNet_RPC,
		WSEndpoint:  rpc.DevNet_WS,
		ProgramID:   stablecoingen.ProgramID.String(),
	}
}

// LoadConfig reads a YAML config from path. Unset fields keep their defaults;
// unknown fields are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.RPCEndpoint == "" {
		return fmt.Errorf("%w: rpc_endpoint is required", ErrInvalidConfig)
	}
	if c.WSEndpoint == "" {
		return fmt.Errorf("%w: ws_endpoint is required", ErrInvalidConfig)
	}
	if _, err := c.programID(); err != nil {
		return err
	}
	return nil
}

func (c Config) programID() (solana.PublicKey, error) {
	if c.ProgramID == "" {
		return stablecoingen.ProgramID, nil
	}
	programID, err := solana.PublicKeyFromBase58(c.ProgramID)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: program_id: %v", ErrInvalidConfig, err)
	}
	return programID, nil
}

// NewFromConfig dials the configured endpoints and returns a client.
// Options are applied after the config.
func NewFromConfig(ctx context.Context, cfg Config, opts ...Option) (*Stablecoin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	programID, _ := cfg.programID()

	wsClient, err := ws.Connect(ctx, cfg.WSEndpoint)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.WSEndpoint, err)
	}
	rpcClient := rpc.New(cfg.RPCEndpoint)

	opts = append([]Option{WithProgramID(programID), WithSimulate(cfg.Simulate)}, opts...)
	s, err := New(rpcClient, wsClient, opts...)
	if err != nil {
		wsClient.Close()
		return nil, err
	}
	return s, nil
}
