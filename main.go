package main

import "github.com/gxxtools/gxxtools/cmd/gxxtool"

func main() { gxxtool.Execute() }
