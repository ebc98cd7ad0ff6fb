package main

import (
	"fmt"

	"example.com/basic/api"
)

//servicegen:service example.com/basic/api.Plugin
type Good struct{}

func (Good) Name() string { return "good" }

//servicegen:service example.com/basic/api.Plugin
type Bad struct{}

//servicegen:service Plugin
type Unqualified struct{}

func main() {
	var p api.Plugin = Good{}
	fmt.Println(p.Name(), Bad{}, Unqualified{})
}
