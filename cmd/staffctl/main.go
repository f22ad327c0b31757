package main

import (
	"fmt"
	"os"

	"github.com/dalemusser/staffboard/cmd/staffctl/command"
)

func main() {
	if err := execute(nil); err != nil {
		fmt.Fprintln(os.Stderr, "staffctl:", err)
		os.Exit(1)
	}
}

func execute(args []string) error {
	cmd := command.NewCmd()
	if args != nil {
		cmd.SetArgs(args)
	}
	return cmd.Execute()
}
