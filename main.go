package main

import "github.com/jannes/han-cihui/internal/cli"

func main() {
	cli.Execute()
}
