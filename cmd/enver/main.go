// Command enver scaffolds and checks dotenv config files from a YAML or JSON
// schema of declared variables.
package main

import (
	"os"

	"github.com/ygrebnov/enver/envstore"
)

func main() {
	if err := newRootCmd(envstore.OS()).Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}
