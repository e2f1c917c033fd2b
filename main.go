package main

import (
	"facemark.io/infrastructure"
	"facemark.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
