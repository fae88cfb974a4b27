package main

import (
	"log"

	"github.com/alarmbridge/alarmbridge/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ alarmbridge failed to start: %v", err)
	}
}
