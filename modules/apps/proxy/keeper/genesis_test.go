package keeper_test

import (
	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

func (suite *KeeperTestSuite) TestGenesis() {
	suite.instantiate(types.InstantiateMsg{Owner: owner, Whitelist: []string{alice}})

	_, err := suite.keeper.Execute(suite.ctx, alice, executeMsgs(
		types.ExecuteMsgInfo{Msg: suite.bankSend()},
		types.ExecuteMsgInfo{Msg: suite.bankSend(), ReplyCallback: replyCallback(5)},
	))
	suite.Require().NoError(err)

	genesis := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().Equal(uint32(2), genesis.NextCallbackIndex)
	suite.Require().Len(genesis.ActiveCallbacks, 1)
	suite.Require().Equal(uint32(1), genesis.ActiveCallbacks[0].Index)

	suite.SetupTest() // reset

	suite.keeper.InitGenesis(suite.ctx, *genesis)
	suite.Require().Equal(genesis, suite.keeper.ExportGenesis(suite.ctx))

	// the imported counter keeps handing out fresh indices
	res, err := suite.keeper.Execute(suite.ctx, alice, executeMsgs(
		types.ExecuteMsgInfo{Msg: suite.bankSend(), ReplyCallback: replyCallback(6)},
	))
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewReplyID(types.ExecuteMsgCallbackReplyKind, 2), res.Messages[0].ID)
}

func (suite *KeeperTestSuite) TestInitGenesisInvalid() {
	genesis := types.DefaultGenesisState()
	genesis.ActiveCallbacks = []types.IndexedReplyCallback{
		{Index: 1, Callback: types.NewReplyCallbackInfo(1, alice, "transfer", "channel-0", "untrn")},
		{Index: 1, Callback: types.NewReplyCallbackInfo(2, alice, "transfer", "channel-0", "untrn")},
	}

	suite.Require().Panics(func() {
		suite.keeper.InitGenesis(suite.ctx, *genesis)
	})
}
