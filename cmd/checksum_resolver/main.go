package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ingrid-storage/storage-locator/pkg/checksum"
	"github.com/ingrid-storage/storage-locator/pkg/configuration"
	"github.com/ingrid-storage/storage-locator/pkg/global"
	"github.com/ingrid-storage/storage-locator/pkg/program"
	"github.com/ingrid-storage/storage-locator/pkg/util"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// A utility for obtaining the checksum of a single object, suitable for
// use as a checksum callout of storage systems. The checksum is written
// to standard output, after which the utility terminates.
//
// Objects whose checksum is still being computed after retrying cause
// the pending sentinel to be written, as callers of the utility expect
// to receive that value. The exit code is zero in that case.

func main() {
	program.RunMain(func(ctx context.Context, siblingsGroup, dependenciesGroup program.Group) error {
		if len(os.Args) != 3 {
			return status.Error(codes.InvalidArgument, "Usage: checksum_resolver checksum_resolver.jsonnet name")
		}
		var config configuration.ChecksumResolverConfiguration
		if err := util.UnmarshalConfigurationFromFile(os.Args[1], &config); err != nil {
			return util.StatusWrapf(err, "Failed to read configuration from %s", os.Args[1])
		}
		_, logger, err := global.ApplyConfiguration(config.Global)
		if err != nil {
			return util.StatusWrap(err, "Failed to apply global configuration options")
		}
		defer logger.Sync()

		resolver, err := checksum.NewResolverFromConfiguration(ctx, &config, util.NewZapErrorLogger(logger))
		if err != nil {
			return util.StatusWrap(err, "Failed to create checksum resolver")
		}

		name := os.Args[2]
		resolution, err := resolver.Resolve(ctx, name)
		if err != nil {
			return util.StatusWrapf(err, "Failed to resolve checksum of object %#v", name)
		}
		c, ok := resolution.GetChecksum()
		if !ok {
			logger.Warn("Checksum is still pending", zap.String("name", name))
			c = checksum.PendingSentinel
		}
		if _, err := fmt.Println(c); err != nil {
			return util.StatusWrap(err, "Failed to write checksum")
		}
		return nil
	})
}
