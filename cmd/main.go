package main

import (
	"context"
	"os"

	"github.com/m04kA/SMC-ReservationService/internal/cli"
)

func main() {
	if err := cli.NewRoot().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
