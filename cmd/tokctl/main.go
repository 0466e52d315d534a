// Command tokctl is the operator console for tokenized payment
// credentials: it lists and inspects tokens held at the Token Directory
// Service, drives lifecycle transitions through their legality checks,
// and tracks requests the directory has not yet confirmed.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
