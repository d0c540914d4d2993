package main

import (
	"log"

	"newsradar/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("newsradar: %v", err)
	}
}
