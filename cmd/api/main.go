package main

import (
	appfx "github.com/maximiza-sistemas/backend-gestao-sub001/internal/fx"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		appfx.AppModule,
	).Run()
}
