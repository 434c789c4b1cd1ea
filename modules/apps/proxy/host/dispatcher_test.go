package host_test

import (
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/store"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/bech32"
	"github.com/stretchr/testify/suite"
	"github.com/tendermint/tendermint/libs/log"
	tmproto "github.com/tendermint/tendermint/proto/tendermint/types"
	dbm "github.com/tendermint/tm-db"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/host"
	"github.com/cosmos/ibc-proxy/modules/apps/proxy/keeper"
	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

const prefix = "neutron"

type DispatcherTestSuite struct {
	suite.Suite

	ctx      sdk.Context
	keeper   keeper.Keeper
	executor *host.SimulatedExecutor

	proxy string
	owner string
	alice string
}

func (suite *DispatcherTestSuite) SetupTest() {
	storeKey := sdk.NewKVStoreKey(types.StoreKey)

	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db)
	cms.MountStoreWithDB(storeKey, sdk.StoreTypeIAVL, db)
	suite.Require().NoError(cms.LoadLatestVersion())

	suite.ctx = sdk.NewContext(cms, tmproto.Header{Time: time.Unix(1_000, 0)}, false, log.NewNopLogger())

	suite.proxy = suite.address("proxy")
	suite.owner = suite.address("owner")
	suite.alice = suite.address("alice")

	suite.keeper = keeper.NewKeeper(storeKey, suite.proxy)
	suite.executor = host.NewSimulatedExecutor("teleport")
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (suite *DispatcherTestSuite) address(name string) string {
	addr, err := bech32.ConvertAndEncode(prefix, []byte(name))
	suite.Require().NoError(err)
	return addr
}

func (suite *DispatcherTestSuite) effect(kind types.EffectKind) types.Effect {
	effect, err := types.NewEffect(kind, map[string]interface{}{"noop": map[string]interface{}{}})
	suite.Require().NoError(err)
	return effect
}

func (suite *DispatcherTestSuite) replyCallback(callbackID uint32) *types.ReplyCallback {
	return &types.ReplyCallback{
		CallbackID: callbackID,
		IBCPort:    "transfer",
		IBCChannel: "channel-3",
		Denom:      "untrn",
	}
}

func (suite *DispatcherTestSuite) instantiate(dispatcher host.Dispatcher, msg types.InstantiateMsg) *host.Result {
	msg.ChainPrefix = prefix

	res, err := dispatcher.Instantiate(suite.ctx, msg)
	suite.Require().NoError(err)
	return res
}

func (suite *DispatcherTestSuite) TestInstantiateDispatchesInitialMsgs() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor)

	res := suite.instantiate(dispatcher, types.InstantiateMsg{
		Owner: suite.owner,
		Msgs:  []types.Effect{suite.effect(types.EffectKindBank)},
	})
	suite.Require().Len(res.Executed, 1)
	suite.Require().Len(suite.executor.Executed, 1)
	suite.Require().True(suite.keeper.HasConfig(suite.ctx))
}

func (suite *DispatcherTestSuite) TestInstantiateFailingMsgRollsBack() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor)

	teleport := types.Effect{Kind: types.EffectKindUnknown, Variant: "teleport", Body: []byte(`{}`)}

	_, err := dispatcher.Instantiate(suite.ctx, types.InstantiateMsg{ChainPrefix: prefix, Msgs: []types.Effect{teleport}})
	suite.Require().ErrorIs(err, types.ErrRemoteFailure)
	suite.Require().False(suite.keeper.HasConfig(suite.ctx))
}

func (suite *DispatcherTestSuite) TestExecuteRelaysReplyCallback() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor)
	suite.instantiate(dispatcher, types.InstantiateMsg{})

	res, err := dispatcher.Execute(suite.ctx, suite.alice, types.ExecuteMsg{ExecuteMsgs: &types.ExecuteMsgsMsg{
		Msgs: []types.ExecuteMsgInfo{
			{Msg: suite.effect(types.EffectKindBank)},
			{Msg: suite.effect(types.EffectKindStaking), ReplyCallback: suite.replyCallback(8)},
			{Msg: suite.effect(types.EffectKindWasm)},
		},
	}})
	suite.Require().NoError(err)

	// the callback transfer runs right after the message it reports on
	suite.Require().Len(res.Executed, 4)
	suite.Require().Equal(types.EffectKindStaking, res.Executed[1].Msg.Kind)
	suite.Require().Equal(types.EffectKindStargate, res.Executed[2].Msg.Kind)
	suite.Require().Equal(types.EffectKindWasm, res.Executed[3].Msg.Kind)

	suite.Require().Len(res.Packets, 1)
	packet := res.Packets[0]
	suite.Require().Equal("channel-3", packet.SourceChannel)
	suite.Require().Equal(suite.proxy, packet.Sender)
	suite.Require().Equal(suite.alice, packet.Receiver)
	suite.Require().Contains(packet.Memo, `"callback_id":8`)
	suite.Require().Contains(packet.Memo, host.EventTypeExecuted)

	suite.Require().Zero(res.Expired)
	suite.Require().Empty(suite.keeper.GetAllReplyCallbacks(suite.ctx))
	suite.Require().Equal(uint32(3), suite.keeper.GetNextCallbackIndex(suite.ctx))
}

func (suite *DispatcherTestSuite) TestExecuteRejectedBatchRollsBack() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor)
	suite.instantiate(dispatcher, types.InstantiateMsg{AllowAnyMsg: new(bool), AllowCrossChainMsgs: true})

	funded, err := types.NewEffect(types.EffectKindWasm, map[string]interface{}{
		"instantiate": types.WasmInstantiateMsg{CodeID: 1, Funds: sdk.NewCoins(sdk.NewInt64Coin("untrn", 1))},
	})
	suite.Require().NoError(err)

	unfunded, err := types.NewEffect(types.EffectKindWasm, map[string]interface{}{
		"instantiate": types.WasmInstantiateMsg{CodeID: 1},
	})
	suite.Require().NoError(err)

	_, err = dispatcher.Execute(suite.ctx, suite.alice, types.ExecuteMsg{ExecuteMsgs: &types.ExecuteMsgsMsg{
		Msgs: []types.ExecuteMsgInfo{
			{Msg: unfunded, ReplyCallback: suite.replyCallback(1)},
			{Msg: funded},
		},
	}})
	suite.Require().ErrorIs(err, types.ErrInvalidInput)
	suite.Require().Contains(err.Error(), "cannot spend funds")

	// neither the callback of the first message nor the counter survive
	suite.Require().Empty(suite.keeper.GetAllReplyCallbacks(suite.ctx))
	suite.Require().Zero(suite.keeper.GetNextCallbackIndex(suite.ctx))
	suite.Require().Empty(suite.executor.Executed)
}

func (suite *DispatcherTestSuite) TestExecuteFailingMsgRollsBack() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor)
	suite.instantiate(dispatcher, types.InstantiateMsg{AllowCrossChainMsgs: true})

	teleport := types.Effect{Kind: types.EffectKindUnknown, Variant: "teleport", Body: []byte(`{}`)}

	_, err := dispatcher.Execute(suite.ctx, suite.alice, types.ExecuteMsg{ExecuteMsgs: &types.ExecuteMsgsMsg{
		Msgs: []types.ExecuteMsgInfo{
			{Msg: suite.effect(types.EffectKindBank), ReplyCallback: suite.replyCallback(1)},
			{Msg: teleport},
		},
	}})
	suite.Require().ErrorIs(err, types.ErrRemoteFailure)

	suite.Require().Empty(suite.keeper.GetAllReplyCallbacks(suite.ctx))
	suite.Require().Zero(suite.keeper.GetNextCallbackIndex(suite.ctx))
}

func (suite *DispatcherTestSuite) TestExecuteWithoutRepliesSweeps() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor, host.WithoutReplies())
	suite.instantiate(dispatcher, types.InstantiateMsg{})

	res, err := dispatcher.Execute(suite.ctx, suite.alice, types.ExecuteMsg{ExecuteMsgs: &types.ExecuteMsgsMsg{
		Msgs: []types.ExecuteMsgInfo{
			{Msg: suite.effect(types.EffectKindBank), ReplyCallback: suite.replyCallback(1)},
			{Msg: suite.effect(types.EffectKindBank), ReplyCallback: suite.replyCallback(2)},
		},
	}})
	suite.Require().NoError(err)
	suite.Require().Empty(res.Packets)
	suite.Require().Equal(2, res.Expired)
	suite.Require().Empty(suite.keeper.GetAllReplyCallbacks(suite.ctx))

	expired := 0
	for _, event := range suite.ctx.EventManager().Events() {
		if event.Type == types.EventTypeCallbackExpired {
			expired++
		}
	}
	suite.Require().Equal(2, expired)
}

func (suite *DispatcherTestSuite) TestExecuteOwnerOperation() {
	dispatcher := host.NewDispatcher(suite.keeper, suite.executor)
	suite.instantiate(dispatcher, types.InstantiateMsg{Owner: suite.owner})

	res, err := dispatcher.Execute(suite.ctx, suite.owner, types.ExecuteMsg{
		UpdateWhitelist: &types.UpdateWhitelistMsg{Whitelist: []string{suite.alice}},
	})
	suite.Require().NoError(err)
	suite.Require().Empty(res.Executed)

	cfg, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(cfg.IsWhitelisted(suite.alice))
}
