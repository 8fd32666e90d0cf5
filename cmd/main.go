package main

import (
	"os"

	"cryptoquote/internal/app"

	"github.com/sirupsen/logrus"
)

// @title        cryptoquote API
// @version      1.0
// @description  Rates, quotes and screen sessions for the crypto buy/sell storefront.
// @BasePath     /
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
