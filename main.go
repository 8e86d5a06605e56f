package main

import "github.com/paulohenriquejustino/payment-gateway/cmd"

func main() {
	cmd.Execute()
}
