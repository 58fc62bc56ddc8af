// Package stake implements the stake command group: adding and removing
// stake, listing or showing the wallet's stake positions, and managing
// child hotkeys.
package stake

import (
	"github.com/spf13/cobra"
)

// Cmd is the stake command group.
var Cmd = &cobra.Command{
	Use:     "stake",
	Short:   "Staking operations",
	Aliases: []string{"st", "stakes"},
}

func init() {
	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(removeCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(childrenCmd)
}
