package main

import "github.com/YagYk/FairDeal/cmd"

func main() {
	cmd.Execute()
}
