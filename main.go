package main

import (
	"github.com/playalong-cli/playalong/cmd"
	"github.com/playalong-cli/playalong/config"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	cmd.Execute()
}
