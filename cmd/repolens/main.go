package main

import (
	"fmt"

	"github.com/temirov/repolens/internal/cli"
	"github.com/temirov/repolens/internal/utils"
)

// main is the entry point for the repolens command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger()
	if loggerInitializationError != nil {
		panic(fmt.Errorf("initialize logger: %w", loggerInitializationError))
	}
	defer loggerInstance.Sync()
	if applicationExecutionError := cli.Execute(); applicationExecutionError != nil {
		loggerInstance.Fatal("application execution failed: " + applicationExecutionError.Error())
	}
}
