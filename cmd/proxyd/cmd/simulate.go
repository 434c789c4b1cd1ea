package cmd

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"
	"go.uber.org/zap"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/host"
	"github.com/cosmos/ibc-proxy/modules/apps/proxy/keeper"
	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

// simulationReport is the printed outcome of a simulated operation.
type simulationReport struct {
	Attributes []types.Attribute            `json:"attributes" yaml:"attributes"`
	Executed   []string                     `json:"executed" yaml:"executed"`
	Callbacks  []*encodedCallback           `json:"callbacks" yaml:"callbacks"`
	Expired    int                          `json:"expired" yaml:"expired"`
	Events     []string                     `json:"events" yaml:"events"`
	Pending    []types.IndexedReplyCallback `json:"pending" yaml:"pending"`
}

// newSimulationContext returns a context over a fresh in-memory store holding the proxy state.
func newSimulationContext(storeKey sdk.StoreKey, logger *zap.Logger, blockTime time.Time) (sdk.Context, error) {
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db)
	cms.MountStoreWithDB(storeKey, sdk.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		return sdk.Context{}, err
	}

	return sdk.NewContext(cms, tmproto.Header{Time: blockTime}, false, newZapLogger(logger)), nil
}

func simulateCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [config-file] [execute-msg-file]",
		Short: "Instantiate a proxy in memory and run an operation against it",
		Long: `Instantiate a proxy from a bootstrap file, then run the JSON encoded operation of
execute-msg-file as sender. Forwarded messages are executed without side effects and
the callback transfers they trigger are printed. Nothing is persisted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proxyCfg, err := loadProxyConfig(args[0])
			if err != nil {
				return err
			}

			msg, err := readExecuteMsg(args[1])
			if err != nil {
				return err
			}

			sender, err := cmd.Flags().GetString(flagSender)
			if err != nil {
				return err
			}
			noReplies, err := cmd.Flags().GetBool(flagNoReplies)
			if err != nil {
				return err
			}
			blockTime, err := cmd.Flags().GetInt64(flagBlockTime)
			if err != nil {
				return err
			}

			now := time.Now()
			if blockTime > 0 {
				now = time.Unix(blockTime, 0)
			}

			report, err := simulate(a.Log, proxyCfg, sender, msg, now, noReplies)
			if err != nil {
				return err
			}

			asJSON, err := cmd.Flags().GetBool(flagJSONOutput)
			if err != nil {
				return err
			}

			return printOutput(cmd, report, asJSON)
		},
	}

	cmd.Flags().String(flagSender, "", "address submitting the operation")
	cmd.Flags().Bool(flagNoReplies, false, "drop completion notifications, expiring every reply callback")
	cmd.Flags().Int64(flagBlockTime, 0, "unix time of the simulated block, defaults to now")
	if err := cmd.MarkFlagRequired(flagSender); err != nil {
		panic(err)
	}

	return jsonFlag(cmd)
}

func simulate(
	logger *zap.Logger, proxyCfg *ProxyConfig, sender string, msg types.ExecuteMsg, blockTime time.Time, noReplies bool,
) (*simulationReport, error) {
	storeKey := sdk.NewKVStoreKey(types.StoreKey)

	ctx, err := newSimulationContext(storeKey, logger, blockTime)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create simulation store")
	}

	var opts []host.Option
	if noReplies {
		opts = append(opts, host.WithoutReplies())
	}

	k := keeper.NewKeeper(storeKey, proxyCfg.Address)
	dispatcher := host.NewDispatcher(k, host.NewSimulatedExecutor(), opts...)

	if _, err := dispatcher.Instantiate(ctx, proxyCfg.Instantiate); err != nil {
		return nil, errors.Wrapf(err, "instantiate failed (%s)", types.ErrorKind(err))
	}

	// only the events of the simulated operation are reported
	ctx = ctx.WithEventManager(sdk.NewEventManager())

	res, err := dispatcher.Execute(ctx, sender, msg)
	if err != nil {
		return nil, errors.Wrapf(err, "execute failed (%s)", types.ErrorKind(err))
	}

	report := &simulationReport{
		Attributes: res.Response.Attributes,
		Expired:    res.Expired,
		Pending:    k.GetAllReplyCallbacks(ctx),
	}

	for _, subMsg := range res.Executed {
		report.Executed = append(report.Executed, subMsg.Msg.Variant)
	}

	for _, packet := range res.Packets {
		callback, err := newEncodedCallback(packet)
		if err != nil {
			return nil, err
		}
		report.Callbacks = append(report.Callbacks, callback)
	}

	for _, event := range ctx.EventManager().Events() {
		report.Events = append(report.Events, event.Type)
	}

	logger.Info("simulated operation",
		zap.String("sender", sender),
		zap.Int("executed", len(report.Executed)),
		zap.Int("callbacks", len(report.Callbacks)),
		zap.Int("expired", report.Expired),
	)

	return report, nil
}

func readExecuteMsg(file string) (types.ExecuteMsg, error) {
	bz, err := os.ReadFile(file)
	if err != nil {
		return types.ExecuteMsg{}, errors.Wrapf(err, "failed to read execute msg file %s", file)
	}

	var msg types.ExecuteMsg
	if err := json.Unmarshal(bz, &msg); err != nil {
		return types.ExecuteMsg{}, errors.Wrapf(err, "failed to decode execute msg file %s", file)
	}

	return msg, nil
}
