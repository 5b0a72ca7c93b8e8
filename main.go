/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/joho/godotenv"

	"github.com/soramane/tunelog/cmd"
)

func main() {
	// Local .env files are optional; environment wins either way.
	_ = godotenv.Load()

	cmd.Execute()
}
