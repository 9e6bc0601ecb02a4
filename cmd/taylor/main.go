// Command taylor expands functions into Taylor polynomials, samples them and
// plots the result.
package main

import "github.com/njchilds90/taylorpoly/cmd/taylor/commands"

func main() {
	commands.Execute()
}
