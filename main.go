package main

import (
	"github.com/horizr/horizr/cmd"

	// Modules of horizr
	_ "github.com/horizr/horizr/migrate"
	_ "github.com/horizr/horizr/modrinth"
	_ "github.com/horizr/horizr/packwiz"
	_ "github.com/horizr/horizr/url"
	_ "github.com/horizr/horizr/utils"
)

func main() {
	cmd.Execute()
}
