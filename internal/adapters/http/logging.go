package http

import "log/slog"

const serviceName = "M23-NFT-Auction-Service"

func httpLogger() *slog.Logger {
	return slog.Default().With(
		"service", serviceName,
		"module", "http",
		"layer", "adapter",
	)
}
