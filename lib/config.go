package lib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/units"
)

/* This file implements logic for 'user controlled' global configuration of each module of the dashboard backend */

const (
	// FILE NAMES in the 'data directory'
	ConfigFilePath      = "config.json"       // the file path for the backend configuration
	DraftsFilePath      = "drafts.json"       // the file path for in-progress proposal drafts
	AddressBookFilePath = "address_book.json" // the file path for the wallet address book
)

// Config is the structure of the user configuration options for a govboard backend
type Config struct {
	MainConfig   // main options spanning over all modules
	RPCConfig    // rpc API options
	StoreConfig  // persistence options
	WalletConfig // chain and signer options
}

// DefaultConfig() returns a Config with developer set options
func DefaultConfig() Config {
	return Config{
		MainConfig:   DefaultMainConfig(),
		RPCConfig:    DefaultRPCConfig(),
		StoreConfig:  DefaultStoreConfig(),
		WalletConfig: DefaultWalletConfig(),
	}
}

// MAIN CONFIG BELOW

type MainConfig struct {
	LogLevel string `json:"logLevel"` // any level includes the levels above it: debug < info < warning < error
	Headless bool   `json:"headless"` // disable the admin API surface when run as a pure query backend
}

// DefaultMainConfig() sets log level to 'info'
func DefaultMainConfig() MainConfig {
	return MainConfig{
		LogLevel: "info", // everything but debug is the default
		Headless: false,  // serve the admin API by default
	}
}

// GetLogLevel() parses the log string in the config file into a LogLevel Enum
func (m *MainConfig) GetLogLevel() int32 {
	switch {
	case strings.Contains(strings.ToLower(m.LogLevel), "deb"):
		return DebugLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "inf"):
		return InfoLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "war"):
		return WarnLevel
	case strings.Contains(strings.ToLower(m.LogLevel), "err"):
		return ErrorLevel
	default:
		return DebugLevel
	}
}

// RPC CONFIG BELOW

type RPCConfig struct {
	RPCPort        string `json:"rpcPort"`        // the port where the query rpc server is hosted
	AdminPort      string `json:"adminPort"`      // the port where the admin rpc server is hosted
	RPCUrl         string `json:"rpcURL"`         // the url where the query rpc server is hosted
	AdminRPCUrl    string `json:"adminRPCUrl"`    // the url where the admin rpc server is hosted
	TimeoutS       int    `json:"timeoutS"`       // the rpc request timeout in seconds
	MaxRequestMB   int64  `json:"maxRequestMB"`   // the maximum request body size in megabytes
	AllowedOrigins string `json:"allowedOrigins"` // comma separated CORS origins, * for any
}

// DefaultRPCConfig() sets rpc url to localhost and sets rpc and admin ports from [42000-42001]
func DefaultRPCConfig() RPCConfig {
	return RPCConfig{
		RPCPort:        "42000",                  // the rpc is served on localhost:42000
		AdminPort:      "42001",                  // the admin rpc is served on localhost:42001
		RPCUrl:         "http://localhost:42000", // use a local rpc by default
		AdminRPCUrl:    "http://localhost:42001", // use a local admin rpc by default
		TimeoutS:       3,                        // the rpc timeout is 3 seconds
		MaxRequestMB:   1,                        // cap request bodies at 1 MB
		AllowedOrigins: "*",                      // the dashboard frontend may be served from anywhere
	}
}

// MaxRequestBytes() converts the configured megabyte cap into bytes
func (r *RPCConfig) MaxRequestBytes() int64 { return r.MaxRequestMB * int64(units.MB) }

// STORE CONFIG BELOW

// StoreConfig is user configurations for the key value database
type StoreConfig struct {
	DataDirPath string `json:"dataDirPath"` // path of the designated folder where the application stores its data
	DBName      string `json:"dbName"`      // name of the database
	InMemory    bool   `json:"inMemory"`    // non-disk database, only for testing
}

// DefaultDataDirPath() is $USERHOME/.govboard
func DefaultDataDirPath() string {
	// get the user home
	home, err := os.UserHomeDir()
	// if unable to get the user home
	if err != nil {
		// fatal error
		panic(err)
	}
	// exit with full default data directory path
	return filepath.Join(home, ".govboard")
}

// DefaultStoreConfig() returns the developer recommended store configuration
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		DataDirPath: DefaultDataDirPath(), // use the default data dir path
		DBName:      "govboard",           // 'govboard' database name
		InMemory:    false,                // persist to disk, not memory
	}
}

// WALLET CONFIG BELOW

// WalletConfig selects the chain the dashboard builds proposals for
type WalletConfig struct {
	ChainId string `json:"chainId"` // the cosmos chain id the dashboard targets (ex. cosmos_9001-1)
}

// DefaultWalletConfig() targets the 18 decimals example chain
func DefaultWalletConfig() WalletConfig {
	return WalletConfig{
		ChainId: "cosmos_9001-1", // the 18 decimals example chain
	}
}

// WriteToFile() saves the Config object to a JSON file
func (c Config) WriteToFile(filepath string) error {
	// convert the config to indented 'pretty' json bytes
	jsonBytes, err := json.MarshalIndent(c, "", "  ")
	// if an error occurred during the conversion
	if err != nil {
		// exit with error
		return err
	}
	// write the config.json file to the data directory
	return os.WriteFile(filepath, jsonBytes, os.ModePerm)
}

// NewConfigFromFile() populates a Config object from a JSON file
func NewConfigFromFile(filepath string) (Config, error) {
	// read the file into bytes
	fileBytes, err := os.ReadFile(filepath)
	// if an error occurred
	if err != nil {
		// exit with error
		return Config{}, err
	}
	// define the default config to fill in any blanks in the file
	c := DefaultConfig()
	// populate the default config with the file bytes
	if err = json.Unmarshal(fileBytes, &c); err != nil {
		// exit with error
		return Config{}, err
	}
	// exit
	return c, nil
}
