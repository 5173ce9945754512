package main

import (
	"github.com/omicsdesk/genomaps/cmd/genomaps/cmd"
)

func main() {
	cmd.Execute()
}
