package main

import "estatehub_backend/internal/app"

func main() {
	app.Run()
}
