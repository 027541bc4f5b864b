package main

import (
	"os"

	"github.com/armadaproject/bucketcheck/cmd/bucketcheck/cmd"
	"github.com/armadaproject/bucketcheck/internal/common/logging"
)

func main() {
	logging.ConfigureCliLogging()
	os.Exit(cmd.Execute())
}
