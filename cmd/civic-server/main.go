package main

import (
	"context"
	"fmt"
	"os"

	"civic-reporter-go/internal/bootstrap"
)

func main() {
	fmt.Println("civic-reporter starting")
	if err := bootstrap.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}
