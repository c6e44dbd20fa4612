// cmd/vseek/main.go
package main

import (
	"vseek/internal/app"
	"vseek/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
