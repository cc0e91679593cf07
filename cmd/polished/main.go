package main

import "github.com/MeKo-Tech/polished/internal/cmd"

func main() {
	cmd.Execute()
}
