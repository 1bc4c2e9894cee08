package main

import "github.com/adanyl0v/taskboard/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectStore()
	defer app.DisconnectStore()

	app.MustListenAndServeHTTP()
}
