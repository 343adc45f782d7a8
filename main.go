package main

import "github.com/studiokita/ops-dashboard/cmd"

func main() {
	cmd.Execute()
}
