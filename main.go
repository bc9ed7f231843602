package main

import (
	"os"

	"github.com/peopledesk/peopledesk/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
