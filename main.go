// AgriVaani is a local-first CLI assistant for agricultural queries.
// It answers questions about soils, crops, and government schemes from a
// static knowledge base, augments irrigation advice with live weather data,
// and keeps working offline through a persistent cache and query backlog.
package main

import (
	"fmt"
	"os"

	"github.com/agrivaani-labs/agrivaani-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
