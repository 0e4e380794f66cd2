package main

import "github.com/ibnfzy/gizichain/cmd/gizichain"

func main() {
	gizichain.Execute()
}
