//go:generate go run . wasm --out web

package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/mas-ajil/portfolio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
