// Command sarvam calls the Sarvam AI APIs from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/clearlysid/sarvam-ai-sdk-provider/cmd/sarvam/commands"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
