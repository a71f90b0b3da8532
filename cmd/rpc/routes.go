package rpc

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Govboard RPC Paths
const (
	VersionRoutePath    = "/v1/"
	ChainRoutePath      = "/v1/query/chain"
	ModulesRoutePath    = "/v1/query/modules"
	ParamsRoutePath     = "/v1/query/params"
	ValidateRoutePath   = "/v1/query/validate"
	TxByHashRoutePath   = "/v1/query/tx-by-hash"
	TxsRoutePath        = "/v1/query/txs"
	// admin
	DraftRoutePath               = "/v1/admin/draft"
	DraftEditRoutePath           = "/v1/admin/draft-edit"
	DraftClearRoutePath          = "/v1/admin/draft-clear"
	DraftDiffRoutePath           = "/v1/admin/draft-diff"
	BuildRoutePath               = "/v1/admin/build"
	TogglePrecompileRoutePath    = "/v1/admin/toggle-precompile"
	RegisterERC20RoutePath       = "/v1/admin/register-erc20"
	ToggleConversionRoutePath    = "/v1/admin/toggle-conversion"
	RegisterPreinstallsRoutePath = "/v1/admin/register-preinstalls"
	SubmitRoutePath              = "/v1/admin/submit"
	AddressBookRoutePath         = "/v1/admin/address-book"
	AddressBookAddRoutePath      = "/v1/admin/address-book-add"
	AddressBookDeleteRoutePath   = "/v1/admin/address-book-delete"
	ResourceUsageRoutePath       = "/v1/admin/resource-usage"
	ConfigRoutePath              = "/v1/admin/config"
	LogsRoutePath                = "/v1/admin/log"
)

const (
	VersionRouteName  = "version"
	ChainRouteName    = "chain"
	ModulesRouteName  = "modules"
	ParamsRouteName   = "params"
	ValidateRouteName = "validate"
	TxByHashRouteName = "tx-by-hash"
	TxsRouteName      = "txs"
	// admin
	DraftRouteName               = "draft"
	DraftEditRouteName           = "draft-edit"
	DraftClearRouteName          = "draft-clear"
	DraftDiffRouteName           = "draft-diff"
	BuildRouteName               = "build"
	TogglePrecompileRouteName    = "toggle-precompile"
	RegisterERC20RouteName       = "register-erc20"
	ToggleConversionRouteName    = "toggle-conversion"
	RegisterPreinstallsRouteName = "register-preinstalls"
	SubmitRouteName              = "submit"
	AddressBookRouteName         = "address-book"
	AddressBookAddRouteName      = "address-book-add"
	AddressBookDeleteRouteName   = "address-book-delete"
	ResourceUsageRouteName       = "resource-usage"
	ConfigRouteName              = "config"
	LogsRouteName                = "logs"
)

// routes contains the method and path for a govboard command
type routes map[string]struct {
	Method string
	Path   string
}

// routePaths is a mapping from route names to their corresponding HTTP methods and paths.
var routePaths = routes{
	VersionRouteName:  {Method: http.MethodGet, Path: VersionRoutePath},
	ChainRouteName:    {Method: http.MethodGet, Path: ChainRoutePath},
	ModulesRouteName:  {Method: http.MethodGet, Path: ModulesRoutePath},
	ParamsRouteName:   {Method: http.MethodPost, Path: ParamsRoutePath},
	ValidateRouteName: {Method: http.MethodPost, Path: ValidateRoutePath},
	TxByHashRouteName: {Method: http.MethodPost, Path: TxByHashRoutePath},
	TxsRouteName:      {Method: http.MethodPost, Path: TxsRoutePath},
	// admin
	DraftRouteName:               {Method: http.MethodPost, Path: DraftRoutePath},
	DraftEditRouteName:           {Method: http.MethodPost, Path: DraftEditRoutePath},
	DraftClearRouteName:          {Method: http.MethodPost, Path: DraftClearRoutePath},
	DraftDiffRouteName:           {Method: http.MethodPost, Path: DraftDiffRoutePath},
	BuildRouteName:               {Method: http.MethodPost, Path: BuildRoutePath},
	TogglePrecompileRouteName:    {Method: http.MethodPost, Path: TogglePrecompileRoutePath},
	RegisterERC20RouteName:       {Method: http.MethodPost, Path: RegisterERC20RoutePath},
	ToggleConversionRouteName:    {Method: http.MethodPost, Path: ToggleConversionRoutePath},
	RegisterPreinstallsRouteName: {Method: http.MethodPost, Path: RegisterPreinstallsRoutePath},
	SubmitRouteName:              {Method: http.MethodPost, Path: SubmitRoutePath},
	AddressBookRouteName:         {Method: http.MethodGet, Path: AddressBookRoutePath},
	AddressBookAddRouteName:      {Method: http.MethodPost, Path: AddressBookAddRoutePath},
	AddressBookDeleteRouteName:   {Method: http.MethodPost, Path: AddressBookDeleteRoutePath},
	ResourceUsageRouteName:       {Method: http.MethodGet, Path: ResourceUsageRoutePath},
	ConfigRouteName:              {Method: http.MethodGet, Path: ConfigRoutePath},
	LogsRouteName:                {Method: http.MethodGet, Path: LogsRoutePath},
}

// httpRouteHandlers is a custom type that maps strings to httprouter handle functions
type httpRouteHandlers map[string]httprouter.Handle

// createRouter initializes and returns a new HTTP router with the query route handlers.
func createRouter(s *Server) *httprouter.Router {
	var r = httpRouteHandlers{
		VersionRouteName:  s.Version,
		ChainRouteName:    s.Chain,
		ModulesRouteName:  s.Modules,
		ParamsRouteName:   s.Params,
		ValidateRouteName: s.Validate,
		TxByHashRouteName: s.TransactionByHash,
		TxsRouteName:      s.Transactions,
	}

	// Initialize a new router using the httprouter package.
	router := httprouter.New()

	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]

		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, logHandler{path.Path, handler}.Handle)
	}

	return router
}

// createAdminRouter initializes and returns a new HTTP router with the admin route handlers.
func createAdminRouter(s *Server) *httprouter.Router {
	var r = httpRouteHandlers{
		DraftRouteName:               s.Draft,
		DraftEditRouteName:           s.DraftEdit,
		DraftClearRouteName:          s.DraftClear,
		DraftDiffRouteName:           s.DraftDiff,
		BuildRouteName:               s.Build,
		TogglePrecompileRouteName:    s.TogglePrecompile,
		RegisterERC20RouteName:       s.RegisterERC20,
		ToggleConversionRouteName:    s.ToggleConversion,
		RegisterPreinstallsRouteName: s.RegisterPreinstalls,
		SubmitRouteName:              s.Submit,
		AddressBookRouteName:         s.AddressBook,
		AddressBookAddRouteName:      s.AddressBookAdd,
		AddressBookDeleteRouteName:   s.AddressBookDelete,
		ResourceUsageRouteName:       s.ResourceUsage,
		ConfigRouteName:              s.Config,
		LogsRouteName:                logsHandler(s),
	}

	// Initialize a new router using the httprouter package.
	router := httprouter.New()

	for name, handler := range r {
		// Retrieve the path configuration for the current route name.
		path := routePaths[name]

		// Add the handler for the specific path and HTTP method to the router.
		router.Handle(path.Method, path.Path, logHandler{path.Path, handler}.Handle)
	}

	return router
}
