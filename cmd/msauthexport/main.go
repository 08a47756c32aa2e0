package main

import (
	"os"

	"msauthexport/cmd/msauthexport/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
