package main

import "github.com/LegacyCodeHQ/headerscan/cmd"

func main() {
	cmd.Execute()
}
