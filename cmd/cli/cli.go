package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/govboard-network/govboard/cmd/rpc"
	"github.com/govboard-network/govboard/lib"
	"github.com/govboard-network/govboard/store"
	"github.com/govboard-network/govboard/wallet"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "govboard",
	Short: "the governance dashboard backend for cosmos evm chains",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rpc.SoftwareVersion)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "start the dashboard backend",
	Run: func(cmd *cobra.Command, args []string) {
		Start()
	},
}

var (
	client  = &rpc.Client{}
	config  = lib.Config{}
	l       = lib.LoggerI(nil)
	DataDir = ""
)

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.PersistentFlags().StringVar(&DataDir, "data-dir", lib.DefaultDataDirPath(), "custom data directory location")
	config = InitializeDataDirectory(DataDir, lib.NewDefaultLogger())
	l = lib.NewLogger(lib.LoggerConfig{Level: config.GetLogLevel()}, config.DataDirPath)
	client = rpc.NewClient(config.RPCUrl, config.AdminRPCUrl)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// Start() is the entrypoint of the backend daemon
func Start() {
	// open the key value database under the data directory
	db, err := store.New(config, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	// the backend ships with the in-memory broadcaster until a chain endpoint exists
	broadcaster := wallet.NewMockBroadcaster(l, 0)
	// create the rpc server over the database and broadcaster
	server, err := rpc.NewServer(config, db, broadcaster, l)
	if err != nil {
		l.Fatal(err.Error())
	}
	server.Start()
	// block until an exit signal arrives
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGABRT)
	s := <-stop
	if e := db.Close(); e != nil {
		l.Error(e.Error())
	}
	l.Infof("Exit command %s received", s)
	os.Exit(0)
}

// InitializeDataDirectory() ensures the data directory and config.json exist
func InitializeDataDirectory(dataDirPath string, log lib.LoggerI) lib.Config {
	if dataDirPath == "" {
		dataDirPath = lib.DefaultDataDirPath()
	}
	if err := os.MkdirAll(dataDirPath, os.ModePerm); err != nil {
		log.Fatal(err.Error())
	}
	configFilePath := filepath.Join(dataDirPath, lib.ConfigFilePath)
	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		log.Infof("Creating %s file", lib.ConfigFilePath)
		if err = lib.DefaultConfig().WriteToFile(configFilePath); err != nil {
			log.Fatal(err.Error())
		}
	}
	c, err := lib.NewConfigFromFile(configFilePath)
	if err != nil {
		log.Fatal(err.Error())
	}
	c.DataDirPath = dataDirPath
	return c
}

// writeToConsole() pretty prints a result object for the terminal
func writeToConsole(result any) {
	s, err := lib.MarshalJSONIndentString(result)
	if err != nil {
		l.Fatal(err.Error())
	}
	fmt.Println(s)
}
