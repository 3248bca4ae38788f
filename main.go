package main

import "aptbillmanager/internal/app"

func main() {
	app.Run()
}
