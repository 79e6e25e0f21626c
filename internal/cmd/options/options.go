package options

import (
	"fmt"

	"github.com/flowvibe/mcp-installer/internal/cmd"
	"github.com/flowvibe/mcp-installer/internal/config"
	"github.com/flowvibe/mcp-installer/internal/token"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	OperationsBuilder cmd.OperationsBuilder
	SearcherBuilder   cmd.SearcherBuilder
	TokenStore        token.Store
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	base := &cmd.BaseCmd{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
		OperationsBuilder: base,
		SearcherBuilder:   base,
		TokenStore:        token.KeyringStore{},
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if l == nil {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if i == nil {
			return fmt.Errorf("config initializer cannot be nil")
		}
		o.ConfigInitializer = i
		return nil
	}
}

func WithOperationsBuilder(b cmd.OperationsBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if b == nil {
			return fmt.Errorf("operations builder cannot be nil")
		}
		o.OperationsBuilder = b
		return nil
	}
}

func WithSearcherBuilder(b cmd.SearcherBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if b == nil {
			return fmt.Errorf("searcher builder cannot be nil")
		}
		o.SearcherBuilder = b
		return nil
	}
}

func WithTokenStore(s token.Store) CmdOption {
	return func(o *CmdOptions) error {
		if s == nil {
			return fmt.Errorf("token store cannot be nil")
		}
		o.TokenStore = s
		return nil
	}
}
