package keeper_test

import (
	"encoding/json"

	"github.com/cosmos/ibc-proxy/modules/apps/proxy/types"
)

func (suite *KeeperTestSuite) TestInstantiate() {
	initMsg := types.InstantiateMsg{
		Owner:       owner,
		ChainPrefix: prefix,
		Msgs:        []types.Effect{suite.bankSend()},
	}

	res, err := suite.keeper.Instantiate(suite.ctx, initMsg)
	suite.Require().NoError(err)

	whitelist, err := json.Marshal([]string{owner})
	suite.Require().NoError(err)

	suite.Require().Equal([]types.Attribute{
		{Key: types.AttributeKeyAction, Value: "instantiate"},
		{Key: types.AttributeKeyContract, Value: proxyAddr},
		{Key: types.AttributeKeyOwner, Value: owner},
		{Key: types.AttributeKeyWhitelist, Value: string(whitelist)},
	}, res.Attributes)
	suite.Require().Equal([]types.SubMsg{types.NewSubMsg(suite.bankSend())}, res.Messages)

	cfg, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(cfg.AllowAnyMsg)
	suite.Require().False(cfg.AllowCrossChainMsgs)
	suite.Require().Equal([]string{owner}, cfg.Whitelist)

	// a second instantiation is rejected
	_, err = suite.keeper.Instantiate(suite.ctx, initMsg)
	suite.Require().ErrorIs(err, types.ErrInvalidInput)
}

func (suite *KeeperTestSuite) TestInstantiateNoOwner() {
	res, err := suite.keeper.Instantiate(suite.ctx, types.InstantiateMsg{ChainPrefix: prefix})
	suite.Require().NoError(err)
	suite.Require().Contains(res.Attributes, types.Attribute{Key: types.AttributeKeyOwner, Value: "None"})
	suite.Require().Contains(res.Attributes, types.Attribute{Key: types.AttributeKeyWhitelist, Value: "null"})

	cfg, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().False(cfg.HasWhitelist())
}

func (suite *KeeperTestSuite) TestInstantiateInvalid() {
	testCases := []struct {
		name string
		msg  types.InstantiateMsg
	}{
		{"blank chain prefix", types.InstantiateMsg{Owner: owner}},
		{"owner with another prefix", types.InstantiateMsg{Owner: newAddress("owner"), ChainPrefix: "cosmos"}},
		{"malformed whitelist entry", types.InstantiateMsg{Whitelist: []string{"alice"}, ChainPrefix: prefix}},
		{"empty initial message", types.InstantiateMsg{ChainPrefix: prefix, Msgs: []types.Effect{{}}}},
	}

	for _, tc := range testCases {
		tc := tc

		suite.Run(tc.name, func() {
			suite.SetupTest() // reset

			_, err := suite.keeper.Instantiate(suite.ctx, tc.msg)
			suite.Require().ErrorIs(err, types.ErrInvalidInput)
			suite.Require().False(suite.keeper.HasConfig(suite.ctx))
		})
	}
}

func (suite *KeeperTestSuite) TestUpdateWhitelist() {
	suite.instantiate(types.InstantiateMsg{Owner: owner})

	update := types.ExecuteMsg{UpdateWhitelist: &types.UpdateWhitelistMsg{Whitelist: []string{alice, bob, alice}}}

	_, err := suite.keeper.Execute(suite.ctx, alice, update)
	suite.Require().ErrorIs(err, types.ErrUnauthorized)

	_, err = suite.keeper.Execute(suite.ctx, owner, update)
	suite.Require().NoError(err)

	cfg, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal([]string{alice, bob, owner}, cfg.Whitelist)

	_, err = suite.keeper.Execute(suite.ctx, owner, types.ExecuteMsg{
		UpdateWhitelist: &types.UpdateWhitelistMsg{Whitelist: []string{"not-an-address"}},
	})
	suite.Require().ErrorIs(err, types.ErrInvalidInput)

	// clearing the whitelist opens the proxy
	_, err = suite.keeper.Execute(suite.ctx, owner, types.ExecuteMsg{UpdateWhitelist: &types.UpdateWhitelistMsg{}})
	suite.Require().NoError(err)

	cfg, err = suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Nil(cfg.Whitelist)
}

func (suite *KeeperTestSuite) TestUpdateOwner() {
	suite.instantiate(types.InstantiateMsg{Owner: owner, Whitelist: []string{alice}})

	_, err := suite.keeper.Execute(suite.ctx, alice, types.ExecuteMsg{UpdateOwner: &types.UpdateOwnerMsg{Owner: alice}})
	suite.Require().ErrorIs(err, types.ErrUnauthorized)

	_, err = suite.keeper.Execute(suite.ctx, owner, types.ExecuteMsg{UpdateOwner: &types.UpdateOwnerMsg{Owner: "bogus"}})
	suite.Require().ErrorIs(err, types.ErrInvalidInput)

	res, err := suite.keeper.Execute(suite.ctx, owner, types.ExecuteMsg{UpdateOwner: &types.UpdateOwnerMsg{Owner: bob}})
	suite.Require().NoError(err)
	suite.Require().Contains(res.Attributes, types.Attribute{Key: types.AttributeKeyOwner, Value: `"` + bob + `"`})

	cfg, err := suite.keeper.GetConfig(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(bob, cfg.Owner)
	// the whitelist is left untouched
	suite.Require().Equal([]string{alice, owner}, cfg.Whitelist)

	// renouncing ownership disables owner operations for good
	res, err = suite.keeper.Execute(suite.ctx, bob, types.ExecuteMsg{UpdateOwner: &types.UpdateOwnerMsg{}})
	suite.Require().NoError(err)
	suite.Require().Contains(res.Attributes, types.Attribute{Key: types.AttributeKeyOwner, Value: "null"})

	_, err = suite.keeper.Execute(suite.ctx, bob, types.ExecuteMsg{UpdateOwner: &types.UpdateOwnerMsg{Owner: bob}})
	suite.Require().ErrorIs(err, types.ErrUnauthorized)
}

func (suite *KeeperTestSuite) TestExecuteInvalidUnion() {
	suite.instantiate(types.InstantiateMsg{Owner: owner})

	_, err := suite.keeper.Execute(suite.ctx, owner, types.ExecuteMsg{})
	suite.Require().ErrorIs(err, types.ErrInvalidInput)

	_, err = suite.keeper.Execute(suite.ctx, owner, types.ExecuteMsg{
		UpdateWhitelist: &types.UpdateWhitelistMsg{},
		UpdateOwner:     &types.UpdateOwnerMsg{},
	})
	suite.Require().ErrorIs(err, types.ErrInvalidInput)
}
