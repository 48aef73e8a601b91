package main

import "github.com/moneywatch/moneywatch/cmd"

func main() {
	cmd.Execute()
}
