// passctl generates and verifies RateCard passes without running the server.
package main

import "github.com/adspaceng/ratecard-wallet/internal/cli"

func main() {
	cli.Execute()
}
