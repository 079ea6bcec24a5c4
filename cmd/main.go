package main

import (
	"github.com/chocobean/storefront/internal/app"
	"github.com/chocobean/storefront/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
