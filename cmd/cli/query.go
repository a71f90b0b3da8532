package cli

import (
	"encoding/json"
	"strconv"

	"github.com/govboard-network/govboard/gov"
	"github.com/govboard-network/govboard/lib"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "query commands against the dashboard backend",
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "admin commands against the dashboard backend",
}

func init() {
	queryCmd.AddCommand(chainCmd)
	queryCmd.AddCommand(modulesCmd)
	queryCmd.AddCommand(paramsCmd)
	queryCmd.AddCommand(txsCmd)
	queryCmd.AddCommand(txByHashCmd)
	adminCmd.AddCommand(draftCmd)
	adminCmd.AddCommand(draftEditCmd)
	adminCmd.AddCommand(draftClearCmd)
	adminCmd.AddCommand(draftDiffCmd)
	adminCmd.AddCommand(buildCmd)
	adminCmd.AddCommand(submitCmd)
	adminCmd.AddCommand(addressBookCmd)
	adminCmd.AddCommand(addressBookAddCmd)
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "query the chain context the backend targets",
	Run: func(cmd *cobra.Command, args []string) {
		chain, err := client.Chain()
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(chain)
	},
}

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "query the governed modules and their message type urls",
	Run: func(cmd *cobra.Command, args []string) {
		modules, err := client.Modules()
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(modules)
	},
}

var paramsCmd = &cobra.Command{
	Use:   "params <module>",
	Short: "query the parameter form view of a module",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		params, err := client.Params(gov.ModuleName(args[0]))
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(params)
	},
}

var txsCmd = &cobra.Command{
	Use:   "txs <page>",
	Short: "query a page of the transaction history, newest first",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pageNumber, e := strconv.Atoi(args[0])
		if e != nil {
			l.Fatal(e.Error())
		}
		page, err := client.Transactions(lib.PageParams{PageNumber: pageNumber}, true)
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(page)
	},
}

var txByHashCmd = &cobra.Command{
	Use:   "tx <hash>",
	Short: "query a recorded transaction by its hash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		tx, err := client.TransactionByHash(args[0])
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(tx)
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft <module>",
	Short: "show the proposal draft of a module, creating an empty one when absent",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		draft, err := client.Draft(gov.ModuleName(args[0]))
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(draft)
	},
}

var draftEditCmd = &cobra.Command{
	Use:   "draft-edit <module> <key> <value>",
	Short: "record raw input for one parameter of the module draft",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		draft, err := client.DraftEdit(gov.ModuleName(args[0]), args[1], argToRaw(args[2]))
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(draft)
	},
}

var draftClearCmd = &cobra.Command{
	Use:   "draft-clear <module> [key]",
	Short: "revert one field, or discard the whole draft when no key is given",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		key := ""
		if len(args) == 2 {
			key = args[1]
		}
		draft, err := client.DraftClear(gov.ModuleName(args[0]), key)
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(draft)
	},
}

var draftDiffCmd = &cobra.Command{
	Use:   "draft-diff <module>",
	Short: "show how the draft departs from the registry defaults",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		diff, err := client.DraftDiff(gov.ModuleName(args[0]))
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(diff)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build <module>",
	Short: "assemble the governance message from the module draft",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		build, err := client.Build(gov.ModuleName(args[0]))
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(build)
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <module> <signer> [memo] [fee]",
	Short: "build the module draft and hand the envelope to the broadcaster",
	Args:  cobra.RangeArgs(2, 4),
	Run: func(cmd *cobra.Command, args []string) {
		memo, fee := "", ""
		if len(args) > 2 {
			memo = args[2]
		}
		if len(args) > 3 {
			fee = args[3]
		}
		result, err := client.Submit(gov.ModuleName(args[0]), args[1], memo, fee)
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(result)
	},
}

var addressBookCmd = &cobra.Command{
	Use:   "address-book",
	Short: "list the named signer addresses",
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := client.AddressBook()
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(entries)
	},
}

var addressBookAddCmd = &cobra.Command{
	Use:   "address-book-add <address> [nickname]",
	Short: "name a signer address, generating a nickname when absent",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		nickname := ""
		if len(args) == 2 {
			nickname = args[1]
		}
		entry, err := client.AddressBookAdd(args[0], nickname)
		if err != nil {
			l.Fatal(err.Error())
		}
		writeToConsole(entry)
	},
}

// argToRaw() converts a CLI argument to raw form input: json literals keep their
// shape, everything else is treated as plain text
func argToRaw(arg string) (raw gov.RawValue) {
	if err := json.Unmarshal([]byte(arg), &raw); err != nil {
		return gov.RawString(arg)
	}
	return
}
