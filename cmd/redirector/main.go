package main

import (
	"context"
	"os"

	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/global"
	"github.com/ingrid-storage/storage-locator/pkg/http/server"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/ingrid-storage/storage-locator/pkg/redirector"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		if len(os.Args) != 2 {
			return status.Error(codes.InvalidArgument, "Usage: redirector redirector.jsonnet")
		}
		var config configuration.RedirectorConfiguration
		if err := util.UnmarshalConfigurationFromFile(os.Args[1], &config); err != nil {
			return util.StatusWrapf(err, "Failed to read configuration from %s", os.Args[1])
		}
		lifecycleState, logger, err := global.ApplyConfiguration(config.Global)
		if err != nil {
			return util.StatusWrap(err, "Failed to apply global configuration options")
		}
		defer logger.Sync()

		handler, err := redirector.NewRedirectHandlerFromConfiguration(&config)
		if err != nil {
			return util.StatusWrap(err, "Failed to create redirect handler")
		}
		if len(config.HTTPServers) == 0 {
			return status.Error(codes.InvalidArgument, "No HTTP servers configured")
		}
		server.NewServersFromConfigurationAndServe(
			config.HTTPServers,
			server.NewMetricsHandler(handler, "Redirector"),
			siblingsGroup)

		logger.Info("Redirector started",
			zap.Strings("metadata_endpoints", config.MetadataEndpoints),
			zap.Strings("data_endpoints", config.DataEndpoints))
		lifecycleState.MarkReadyAndWait(siblingsGroup)
		return nil
	})
}
