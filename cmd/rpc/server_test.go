package rpc

import (
	"net/http/httptest"
	"testing"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/store"
	"github.com/govboard-network/govboard/wallet"
	"github.com/stretchr/testify/require"
)

// newTestClient spins up the query and admin routers and returns a client against them
func newTestClient(t *testing.T) *Client {
	logger := lib.NewNullLogger()
	config := lib.DefaultConfig()
	config.DataDirPath = t.TempDir()
	config.InMemory = true
	db, err := store.NewInMemory(logger)
	require.Nil(t, err)
	t.Cleanup(func() { _ = db.Close() })
	server, err := NewServer(config, db, wallet.NewMockBroadcaster(logger, 0), logger)
	require.Nil(t, err)
	querySrv := httptest.NewServer(createRouter(server))
	adminSrv := httptest.NewServer(createAdminRouter(server))
	t.Cleanup(querySrv.Close)
	t.Cleanup(adminSrv.Close)
	return NewClient(querySrv.URL, adminSrv.URL)
}

func TestVersionAndModules(t *testing.T) {
	client := newTestClient(t)
	version, err := client.Version()
	require.Nil(t, err)
	require.Equal(t, SoftwareVersion, version.Version)
	require.Equal(t, "cosmos_9001-1", version.ChainId)
	chain, err := client.Chain()
	require.Nil(t, err)
	require.Equal(t, int64(9001), chain.EVMChainId)
	modules, err := client.Modules()
	require.Nil(t, err)
	require.Len(t, modules, 3)
	require.Equal(t, gov.ModuleVM, modules[0].Module)
	require.Contains(t, modules[0].TypeURLs, gov.MsgUpdateVMParamsURL)
}

func TestParamsAndValidate(t *testing.T) {
	client := newTestClient(t)
	// with no draft the form view renders registry defaults
	params, err := client.Params(gov.ModuleVM)
	require.Nil(t, err)
	require.Len(t, params.Fields, 6)
	require.Equal(t, "evm_denom", params.Fields[0].Key)
	require.False(t, params.Fields[0].Edited)
	// a valid field validates round trip
	response, err := client.Validate(gov.ModuleFeeMarket, "base_fee", gov.RawString("2000000000"))
	require.Nil(t, err)
	require.Equal(t, "2000000000", response.Value)
	// an invalid field surfaces the typed error over http
	_, err = client.Validate(gov.ModuleVM, "evm_denom", gov.RawString("BAD"))
	require.NotNil(t, err)
	require.Equal(t, lib.CodeRPCDecode, err.Code())
	// an unknown module is not found
	_, err = client.Params("bank")
	require.NotNil(t, err)
}

func TestDraftWorkflowOverHTTP(t *testing.T) {
	client := newTestClient(t)
	// edit a field and observe the validated value in the form view
	params, err := client.DraftEdit(gov.ModuleFeeMarket, "elasticity_multiplier", gov.RawNumber("4"))
	require.Nil(t, err)
	for _, field := range params.Fields {
		if field.Key == "elasticity_multiplier" {
			require.True(t, field.Edited)
		}
	}
	// the diff is no longer a full match
	diff, err := client.DraftDiff(gov.ModuleFeeMarket)
	require.Nil(t, err)
	require.False(t, diff.Match)
	// the build produces the feemarket update message
	build, err := client.Build(gov.ModuleFeeMarket)
	require.Nil(t, err)
	require.Empty(t, build.FieldErrors)
	require.Equal(t, gov.MsgUpdateFeeMarketParamsURL, build.Message.TypeURL)
	// a submit broadcasts and records the envelope
	submit, err := client.Submit(gov.ModuleFeeMarket, gov.GovAuthority, "raise elasticity", "5000")
	require.Nil(t, err)
	require.Equal(t, wallet.TxStatusSubmitted, submit.Status)
	tx, err := client.TransactionByHash(submit.Hash.String())
	require.Nil(t, err)
	require.Equal(t, gov.GovAuthority, tx.Signer)
	require.Len(t, tx.Messages, 1)
	// a non hex hash fails before the store is consulted
	_, err = client.TransactionByHash("zz")
	require.NotNil(t, err)
	require.Equal(t, lib.CodeRPCDecode, err.Code())
	// the history pages the recorded envelope
	page, err := client.Transactions(lib.PageParams{PageNumber: 1, PerPage: 10}, true)
	require.Nil(t, err)
	require.Equal(t, 1, page.TotalCount)
	// the draft was consumed by the submission
	_, err = client.Build(gov.ModuleFeeMarket)
	require.NotNil(t, err)
}

func TestDraftBuildAggregatesErrors(t *testing.T) {
	client := newTestClient(t)
	_, err := client.DraftEdit(gov.ModuleFeeMarket, "min_gas_multiplier", gov.RawString("2"))
	require.Nil(t, err)
	_, err = client.DraftEdit(gov.ModuleFeeMarket, "base_fee_change_denominator", gov.RawNumber("0"))
	require.Nil(t, err)
	// both failures come back in one response
	_, err = client.Build(gov.ModuleFeeMarket)
	require.NotNil(t, err)
	require.Equal(t, lib.CodeRPCDecode, err.Code())
	// clearing one field then the other restores buildability via defaults plus edits
	_, err = client.DraftClear(gov.ModuleFeeMarket, "min_gas_multiplier")
	require.Nil(t, err)
	_, err = client.DraftEdit(gov.ModuleFeeMarket, "base_fee_change_denominator", gov.RawNumber("16"))
	require.Nil(t, err)
	build, err := client.Build(gov.ModuleFeeMarket)
	require.Nil(t, err)
	require.Empty(t, build.FieldErrors)
}

func TestTogglePrecompileOverHTTP(t *testing.T) {
	client := newTestClient(t)
	address := "0x0000000000000000000000000000000000000900"
	// the first toggle enables the address in the default list
	response, err := client.TogglePrecompile(gov.ModuleERC20, "dynamic_precompiles", address)
	require.Nil(t, err)
	require.True(t, response.Enabled)
	require.Equal(t, []string{address}, response.Addresses)
	// the second toggle disables it again
	response, err = client.TogglePrecompile(gov.ModuleERC20, "dynamic_precompiles", address)
	require.Nil(t, err)
	require.False(t, response.Enabled)
	require.Empty(t, response.Addresses)
	// a non list parameter cannot be toggled
	_, err = client.TogglePrecompile(gov.ModuleERC20, "enable_erc20", address)
	require.NotNil(t, err)
}

func TestAddressBookOverHTTP(t *testing.T) {
	client := newTestClient(t)
	entry, err := client.AddressBookAdd(gov.GovAuthority, "authority")
	require.Nil(t, err)
	require.Equal(t, "authority", entry.Nickname)
	entries, err := client.AddressBook()
	require.Nil(t, err)
	require.Len(t, entries, 1)
	entries, err = client.AddressBookDelete(gov.GovAuthority)
	require.Nil(t, err)
	require.Empty(t, entries)
	// a malformed address is rejected
	_, err = client.AddressBookAdd("nope", "")
	require.NotNil(t, err)
}
