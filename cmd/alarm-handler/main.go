package main

import (
	"context"

	"github.com/soliscottude/ec2-self-healing-demo/internal/logger"
	"github.com/soliscottude/ec2-self-healing-demo/internal/service/handler"
)

func main() {
	ctx := context.Background()

	if err := handler.Run(ctx); err != nil {
		logger.Fatalf(ctx, "Alarm handler failed to start: %v", err)
	}
}
