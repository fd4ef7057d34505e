package main

import "github.com/OmaR-WezA/weza-docs/src/wezadocsd/cmd"

func main() {
	cmd.Execute()
}
