// Package subnets implements the subnets command group: listing and
// inspecting subnet pools, and registering subnets and hotkeys.
package subnets

import (
	"github.com/spf13/cobra"
)

// Cmd is the subnets command group.
var Cmd = &cobra.Command{
	Use:     "subnets",
	Short:   "Subnet operations",
	Aliases: []string{"s", "subnet"},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(lockCostCmd)
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(registerCmd)
}
