package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

const (
	keyAddress             = "address"
	keyChainPrefix         = "chain_prefix"
	keyOwner               = "owner"
	keyWhitelist           = "whitelist"
	keyAllowAnyMsg         = "allow_any_msg"
	keyAllowCrossChainMsgs = "allow_cross_chain_msgs"
	keyMsgs                = "msgs"
)

// ProxyConfig is a proxy deployment read from a bootstrap file: the address the
// proxy acts as and the message it is instantiated with.
type ProxyConfig struct {
	Address     string
	Instantiate types.InstantiateMsg
}

// loadProxyConfig reads a bootstrap file in any format viper understands. An absent
// whitelist leaves the proxy open while an empty one admits nobody.
func loadProxyConfig(path string) (*ProxyConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read proxy config %s", path)
	}

	address := v.GetString(keyAddress)
	if address == "" {
		return nil, errors.Errorf("proxy config %s: %s is required", path, keyAddress)
	}

	allowCrossChainMsgs, err := cast.ToBoolE(v.Get(keyAllowCrossChainMsgs))
	if err != nil {
		return nil, errors.Wrapf(err, "proxy config %s: invalid %s", path, keyAllowCrossChainMsgs)
	}

	msg := types.InstantiateMsg{
		AllowCrossChainMsgs: allowCrossChainMsgs,
		ChainPrefix:         v.GetString(keyChainPrefix),
		Owner:               v.GetString(keyOwner),
	}

	if v.IsSet(keyAllowAnyMsg) {
		allowAnyMsg, err := cast.ToBoolE(v.Get(keyAllowAnyMsg))
		if err != nil {
			return nil, errors.Wrapf(err, "proxy config %s: invalid %s", path, keyAllowAnyMsg)
		}
		msg.AllowAnyMsg = &allowAnyMsg
	}

	if v.IsSet(keyWhitelist) {
		whitelist, err := cast.ToStringSliceE(v.Get(keyWhitelist))
		if err != nil {
			return nil, errors.Wrapf(err, "proxy config %s: invalid %s", path, keyWhitelist)
		}
		if whitelist == nil {
			whitelist = []string{}
		}
		msg.Whitelist = whitelist
	}

	if v.IsSet(keyMsgs) {
		// initial messages keep their JSON shape whatever the file format
		bz, err := json.Marshal(stringKeyed(v.Get(keyMsgs)))
		if err != nil {
			return nil, errors.Wrapf(err, "proxy config %s: invalid %s", path, keyMsgs)
		}
		if err := json.Unmarshal(bz, &msg.Msgs); err != nil {
			return nil, errors.Wrapf(err, "proxy config %s: invalid %s", path, keyMsgs)
		}
	}

	return &ProxyConfig{Address: address, Instantiate: msg}, nil
}

func configCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"cfg"},
		Short:   "Commands to inspect proxy bootstrap files",
	}

	cmd.AddCommand(
		configValidateCmd(a),
	)

	return cmd
}

func configValidateCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate [file]",
		Aliases: []string{"v"},
		Short:   "Validate a bootstrap file and print the resulting proxy configuration",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proxyCfg, err := loadProxyConfig(args[0])
			if err != nil {
				return err
			}

			cfg := types.NewConfig(proxyCfg.Instantiate)
			if err := cfg.Validate(); err != nil {
				return errors.Wrapf(err, "invalid proxy config %s", args[0])
			}

			if err := types.ValidateAddress(proxyCfg.Address, cfg.ChainPrefix); err != nil {
				return errors.Wrapf(err, "invalid proxy address in %s", args[0])
			}

			a.Log.Debug("validated proxy config",
				zap.String("file", args[0]),
				zap.Int("initial_msgs", len(proxyCfg.Instantiate.Msgs)),
			)

			asJSON, err := cmd.Flags().GetBool(flagJSONOutput)
			if err != nil {
				return err
			}

			return printOutput(cmd, types.ConfigResponse{Config: cfg}, asJSON)
		},
	}

	return jsonFlag(cmd)
}

// stringKeyed converts the maps decoded from YAML files into maps encodable as JSON.
func stringKeyed(value interface{}) interface{} {
	switch value := value.(type) {
	case map[interface{}]interface{}:
		return stringKeyed(cast.ToStringMap(value))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, v := range value {
			out[k] = stringKeyed(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, v := range value {
			out[i] = stringKeyed(v)
		}
		return out
	default:
		return value
	}
}
