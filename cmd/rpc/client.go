package rpc

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/wallet"
)

// Client is a typed HTTP client over the govboard RPC surface
type Client struct {
	rpcURL      string // the base url of the query server
	adminRPCURL string // the base url of the admin server
	client      http.Client
}

// NewClient() creates a client against the configured query and admin urls
func NewClient(rpcURL, adminRPCURL string) *Client {
	return &Client{rpcURL: rpcURL, adminRPCURL: adminRPCURL, client: http.Client{Timeout: 10 * time.Second}}
}

// Version() returns the backend software version and target chain
func (c *Client) Version() (response *versionResponse, err lib.ErrorI) {
	response = new(versionResponse)
	err = c.get(VersionRouteName, response)
	return
}

// Chain() returns the chain context the backend targets
func (c *Client) Chain() (chain *wallet.ChainContext, err lib.ErrorI) {
	chain = new(wallet.ChainContext)
	err = c.get(ChainRouteName, chain)
	return
}

// Modules() returns every governed module with its keys and message type urls
func (c *Client) Modules() (modules []moduleInfo, err lib.ErrorI) {
	err = c.get(ModulesRouteName, &modules)
	return
}

// Params() returns the form view of a module
func (c *Client) Params(module gov.ModuleName) (response *paramsResponse, err lib.ErrorI) {
	response = new(paramsResponse)
	err = c.post(ParamsRouteName, moduleRequest{Module: module}, response)
	return
}

// Validate() checks a single raw field value against its descriptor
func (c *Client) Validate(module gov.ModuleName, key string, value gov.RawValue) (response *validateResponse, err lib.ErrorI) {
	response = new(validateResponse)
	err = c.post(ValidateRouteName, fieldRequest{Module: module, Key: key, Value: value}, response)
	return
}

// TransactionByHash() returns a recorded envelope by its hex hash
func (c *Client) TransactionByHash(hash string) (tx *wallet.Transaction, err lib.ErrorI) {
	tx = new(wallet.Transaction)
	err = c.post(TxByHashRouteName, hashRequest{Hash: hash}, tx)
	return
}

// Transactions() returns a page of the transaction history
func (c *Client) Transactions(params lib.PageParams, newestFirst bool) (page *lib.Page, err lib.ErrorI) {
	page = new(lib.Page)
	err = c.post(TxsRouteName, txsRequest{PageParams: params, NewestFirst: newestFirst}, page)
	return
}

// Draft() returns the module draft, creating an empty one when absent
func (c *Client) Draft(module gov.ModuleName) (response *paramsResponse, err lib.ErrorI) {
	response = new(paramsResponse)
	err = c.post(DraftRouteName, moduleRequest{Module: module}, response)
	return
}

// DraftEdit() records raw input for one parameter of the module draft
func (c *Client) DraftEdit(module gov.ModuleName, key string, value gov.RawValue) (response *paramsResponse, err lib.ErrorI) {
	response = new(paramsResponse)
	err = c.post(DraftEditRouteName, fieldRequest{Module: module, Key: key, Value: value}, response)
	return
}

// DraftClear() reverts one field, or discards the whole draft when key is empty
func (c *Client) DraftClear(module gov.ModuleName, key string) (response *paramsResponse, err lib.ErrorI) {
	response = new(paramsResponse)
	err = c.post(DraftClearRouteName, clearRequest{Module: module, Key: key}, response)
	return
}

// DraftDiff() renders how the draft departs from the registry defaults
func (c *Client) DraftDiff(module gov.ModuleName) (response *diffResponse, err lib.ErrorI) {
	response = new(diffResponse)
	err = c.post(DraftDiffRouteName, moduleRequest{Module: module}, response)
	return
}

// Build() assembles the governance message from the module draft
func (c *Client) Build(module gov.ModuleName) (response *buildResponse, err lib.ErrorI) {
	response = new(buildResponse)
	err = c.post(BuildRouteName, moduleRequest{Module: module}, response)
	return
}

// TogglePrecompile() flips one address in a precompile list parameter of the draft
func (c *Client) TogglePrecompile(module gov.ModuleName, key, address string) (response *togglePrecompileResponse, err lib.ErrorI) {
	response = new(togglePrecompileResponse)
	err = c.post(TogglePrecompileRouteName, togglePrecompileRequest{Module: module, Key: key, Address: address}, response)
	return
}

// RegisterERC20() assembles a MsgRegisterERC20 governance message
func (c *Client) RegisterERC20(addresses []string) (response *buildResponse, err lib.ErrorI) {
	response = new(buildResponse)
	err = c.post(RegisterERC20RouteName, registerERC20Request{Addresses: addresses}, response)
	return
}

// ToggleConversion() assembles a MsgToggleConversion governance message
func (c *Client) ToggleConversion(token string) (response *buildResponse, err lib.ErrorI) {
	response = new(buildResponse)
	err = c.post(ToggleConversionRouteName, toggleConversionRequest{Token: token}, response)
	return
}

// RegisterPreinstalls() assembles a MsgRegisterPreinstalls governance message
func (c *Client) RegisterPreinstalls(preinstalls []gov.Preinstall) (response *buildResponse, err lib.ErrorI) {
	response = new(buildResponse)
	err = c.post(RegisterPreinstallsRouteName, registerPreinstallsRequest{Preinstalls: preinstalls}, response)
	return
}

// Submit() builds the module draft and hands the envelope to the broadcaster
func (c *Client) Submit(module gov.ModuleName, signer, memo, fee string) (response *submitResponse, err lib.ErrorI) {
	response = new(submitResponse)
	err = c.post(SubmitRouteName, submitRequest{Module: module, Signer: signer, Memo: memo, Fee: fee}, response)
	return
}

// AddressBook() returns every named signer address
func (c *Client) AddressBook() (entries []*wallet.AddressBookEntry, err lib.ErrorI) {
	err = c.get(AddressBookRouteName, &entries)
	return
}

// AddressBookAdd() names a signer address
func (c *Client) AddressBookAdd(address, nickname string) (entry *wallet.AddressBookEntry, err lib.ErrorI) {
	entry = new(wallet.AddressBookEntry)
	err = c.post(AddressBookAddRouteName, addressBookAddRequest{Address: address, Nickname: nickname}, entry)
	return
}

// AddressBookDelete() removes a signer address
func (c *Client) AddressBookDelete(address string) (entries []*wallet.AddressBookEntry, err lib.ErrorI) {
	err = c.post(AddressBookDeleteRouteName, addressBookDeleteRequest{Address: address}, &entries)
	return
}

// ResourceUsage() returns backend resource usage
func (c *Client) ResourceUsage() (response *resourceUsageResponse, err lib.ErrorI) {
	response = new(resourceUsageResponse)
	err = c.get(ResourceUsageRouteName, response)
	return
}

// Config() returns the running backend configuration
func (c *Client) Config() (config *lib.Config, err lib.ErrorI) {
	config = new(lib.Config)
	err = c.get(ConfigRouteName, config)
	return
}

// get executes a GET request against a named route
func (c *Client) get(routeName string, ptr any) lib.ErrorI {
	return c.do(routeName, nil, ptr)
}

// post executes a POST request with a json body against a named route
func (c *Client) post(routeName string, request, ptr any) lib.ErrorI {
	bz, err := lib.MarshalJSON(request)
	if err != nil {
		return err
	}
	return c.do(routeName, bz, ptr)
}

// do executes the request with exponential backoff around transient transport errors
func (c *Client) do(routeName string, body []byte, ptr any) lib.ErrorI {
	route := routePaths[routeName]
	url := c.url(route.Path)
	var resp *http.Response
	if err := backoff.Retry(func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		request, e := http.NewRequest(route.Method, url, reader)
		if e != nil {
			return backoff.Permanent(e)
		}
		request.Header.Set(ContentType, ApplicationJSON)
		resp, e = c.client.Do(request)
		return e
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)); err != nil {
		return ErrRPCRequest(err)
	}
	defer func() { _ = resp.Body.Close() }()
	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return ErrRPCRequest(err)
	}
	if resp.StatusCode != http.StatusOK {
		return ErrRPCDecode(resp.StatusCode, string(bz))
	}
	return lib.UnmarshalJSON(bz, ptr)
}

// url picks the admin or query base url from the route path
func (c *Client) url(path string) string {
	if strings.HasPrefix(path, "/v1/admin/") {
		return c.adminRPCURL + path
	}
	return c.rpcURL + path
}
