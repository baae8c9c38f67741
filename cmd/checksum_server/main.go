package main

import (
	"context"
	"net"
	"os"

	"github.com/ingrid-storage/storage-locator/pkg/checksum"
	"github.com/ingrid-storage/storage-locator/pkg/checksumserver"
	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/global"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func main() {
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		if len(os.Args) != 2 {
			return status.Error(codes.InvalidArgument, "Usage: checksum_server checksum_server.jsonnet")
		}
		var config configuration.ChecksumServerConfiguration
		if err := util.UnmarshalConfigurationFromFile(os.Args[1], &config); err != nil {
			return util.StatusWrapf(err, "Failed to read configuration from %s", os.Args[1])
		}
		lifecycleState, logger, err := global.ApplyConfiguration(config.Global)
		if err != nil {
			return util.StatusWrap(err, "Failed to apply global configuration options")
		}
		defer logger.Sync()

		storageRoot := config.StorageRoot
		if storageRoot == "" {
			storageRoot = checksum.DefaultStorageRoot
		}
		listenAddresses := config.ListenAddresses
		if len(listenAddresses) == 0 {
			listenAddresses = []string{":" + checksum.DefaultServerPort}
		}
		s := checksumserver.NewServer(os.DirFS(storageRoot), storageRoot, util.NewZapErrorLogger(logger))
		for _, listenAddress := range listenAddresses {
			listener, err := net.Listen("tcp", listenAddress)
			if err != nil {
				return util.StatusWrapf(err, "Failed to create listening socket for %#v", listenAddress)
			}
			siblingsGroup.Go(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
				return s.Serve(ctx, listener)
			})
			logger.Info("Checksum server listening",
				zap.String("listen_address", listenAddress),
				zap.String("storage_root", storageRoot))
		}

		lifecycleState.MarkReadyAndWait(siblingsGroup)
		return nil
	})
}
