package gxxini_test

import (
	"fmt"

	"github.com/gxxtools/gxxtools/pkg/gxxini"
)

// ExampleParseString demonstrates cross-section placeholder resolution.
func ExampleParseString() {
	doc, err := gxxini.ParseString(`
[COMPILER]
version = 21.7
arch = x86_64

[PATHS]
compiler_root = /opt
compiler_path = ${compiler_root}/Linux_${COMPILER:arch}/${COMPILER:version}
`)
	if err != nil {
		fmt.Println("parse:", err)
		return
	}
	path, err := doc.Resolve("PATHS", "compiler_path")
	if err != nil {
		fmt.Println("resolve:", err)
		return
	}
	fmt.Println(path)
	// Output: /opt/Linux_x86_64/21.7
}

// ExampleDocument_Bool shows typed access to a resolved value.
func ExampleDocument_Bool() {
	doc, _ := gxxini.ParseString("[QUEUE]\nmanual = Yes\n")
	manual, err := doc.Bool("QUEUE", "manual")
	if err != nil {
		fmt.Println("bool:", err)
		return
	}
	fmt.Println(manual)
	// Output: true
}
