package bootstrap

import (
	"context"
	"log/slog"

	"github.com/wavesight/earnings-service/internal/event"
	"github.com/wavesight/earnings-service/internal/server"
	"github.com/wavesight/earnings-service/internal/worker"
)

// ShutdownComponents collects everything that must stop cleanly.
type ShutdownComponents struct {
	Server             *server.Server
	DailyResetWorker   *worker.DailyResetWorker
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the service in dependency order: the HTTP
// server first so no new submissions arrive, then the reset worker so
// no reset fires mid-shutdown, and the publisher last so every reward
// event already in the retry queue gets flushed or dead-lettered.
//
// Shutdown errors are logged and the sequence continues; a stuck
// component must not keep the rest from stopping.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.DailyResetWorker != nil {
		if err := components.DailyResetWorker.Shutdown(ctx); err != nil {
			slog.Error(LogMsgDailyResetWorkerFailed, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
		slog.Error(LogMsgResilientPublisherFailed, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}
