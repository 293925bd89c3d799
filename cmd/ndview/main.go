// Package main provides the ndview CLI for inspecting shapes and strided views.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
