package rpc

import (
	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/wallet"
)

// REQUEST TYPES BELOW

// moduleRequest selects a chain module
type moduleRequest struct {
	Module gov.ModuleName `json:"module"`
}

// fieldRequest carries raw form input for a single parameter
type fieldRequest struct {
	Module gov.ModuleName `json:"module"`
	Key    string         `json:"key"`
	Value  gov.RawValue   `json:"value"`
}

// clearRequest reverts a single field, or the whole draft when key is empty
type clearRequest struct {
	Module gov.ModuleName `json:"module"`
	Key    string         `json:"key"`
}

// hashRequest selects a transaction by its hex hash
type hashRequest struct {
	Hash string `json:"hash"`
}

// txsRequest pages through the transaction history
type txsRequest struct {
	lib.PageParams
	NewestFirst bool `json:"newestFirst"`
}

// togglePrecompileRequest flips one address in a precompile list parameter
type togglePrecompileRequest struct {
	Module  gov.ModuleName `json:"module"`
	Key     string         `json:"key"`
	Address string         `json:"address"`
}

// registerERC20Request registers existing ERC20 contracts as token pairs
type registerERC20Request struct {
	Addresses []string `json:"addresses"`
}

// toggleConversionRequest toggles conversion for a registered token pair
type toggleConversionRequest struct {
	Token string `json:"token"`
}

// registerPreinstallsRequest installs contracts at fixed addresses
type registerPreinstallsRequest struct {
	Preinstalls []gov.Preinstall `json:"preinstalls"`
}

// submitRequest builds the module draft and hands the envelope to the broadcaster
type submitRequest struct {
	Module gov.ModuleName `json:"module"`
	Signer string         `json:"signer"`
	Memo   string         `json:"memo"`
	Fee    string         `json:"fee"`
}

// addressBookAddRequest names a signer address
type addressBookAddRequest struct {
	Address  string `json:"address"`
	Nickname string `json:"nickname"`
}

// addressBookDeleteRequest removes a signer address
type addressBookDeleteRequest struct {
	Address string `json:"address"`
}

// RESPONSE TYPES BELOW

// versionResponse reports the backend software version and target chain
type versionResponse struct {
	Version string `json:"version"`
	ChainId string `json:"chainId"`
}

// moduleInfo describes one governed module for the dashboard navigation
type moduleInfo struct {
	Module   gov.ModuleName `json:"module"`
	Keys     []string       `json:"keys"`
	TypeURLs []string       `json:"typeUrls"`
}

// paramsResponse is the full form view of a module
type paramsResponse struct {
	Module gov.ModuleName   `json:"module"`
	Fields []gov.FieldState `json:"fields"`
}

// validateResponse carries a successfully validated value
type validateResponse struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// buildResponse carries either the built message or the complete failure list
type buildResponse struct {
	Message     *gov.GovernanceMessage `json:"message,omitempty"`
	FieldErrors []gov.FieldError       `json:"fieldErrors,omitempty"`
}

// diffResponse summarizes how a draft departs from the registry defaults
type diffResponse struct {
	Match bool   `json:"match"`
	Diff  string `json:"diff"`
}

// togglePrecompileResponse carries the canonical list after the flip
type togglePrecompileResponse struct {
	Enabled   bool     `json:"enabled"`
	Addresses []string `json:"addresses"`
}

// submitResponse reports the outcome of a broadcast
type submitResponse struct {
	Hash   lib.HexBytes    `json:"hash"`
	Status wallet.TxStatus `json:"status"`
}

// resourceUsageResponse aggregates process and system resource usage
type resourceUsageResponse struct {
	Process ProcessResourceUsage `json:"process"`
	System  SystemResourceUsage  `json:"system"`
}

// ProcessResourceUsage is the backend process resource footprint
type ProcessResourceUsage struct {
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	CreateTime    string  `json:"createTime"`
	FDCount       uint64  `json:"fdCount"`
	ThreadCount   uint64  `json:"threadCount"`
	MemoryPercent float64 `json:"usedMemoryPercent"`
	CPUPercent    float64 `json:"usedCPUPercent"`
}

// SystemResourceUsage is the host resource footprint
type SystemResourceUsage struct {
	TotalRAM        uint64  `json:"totalRAM"`
	AvailableRAM    uint64  `json:"availableRAM"`
	UsedRAM         uint64  `json:"usedRAM"`
	UsedRAMPercent  float64 `json:"usedRAMPercent"`
	FreeRAM         uint64  `json:"freeRAM"`
	UsedCPUPercent  float64 `json:"usedCPUPercent"`
	UserCPU         float64 `json:"userCPU"`
	SystemCPU       float64 `json:"systemCPU"`
	IdleCPU         float64 `json:"idleCPU"`
	TotalDisk       uint64  `json:"totalDisk"`
	UsedDisk        uint64  `json:"usedDisk"`
	UsedDiskPercent float64 `json:"usedDiskPercent"`
	FreeDisk        uint64  `json:"freeDisk"`
	ReceivedBytesIO uint64  `json:"receivedBytesIO"`
	WrittenBytesIO  uint64  `json:"writtenBytesIO"`
}
