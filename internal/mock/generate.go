package mock

//go:generate mockgen -package mock -destination aliases.go github.com/ingrid-storage/storage-locator/internal/mock/aliases Conn
//go:generate mockgen -package mock -destination checksum.go github.com/ingrid-storage/storage-locator/pkg/checksum Cache,Computer,Dialer,RedisClient,Resolver
//go:generate mockgen -package mock -destination clock.go github.com/ingrid-storage/storage-locator/pkg/clock Clock,Timer
//go:generate mockgen -package mock -destination random.go github.com/ingrid-storage/storage-locator/pkg/random ThreadSafeGenerator
//go:generate mockgen -package mock -destination redirector.go github.com/ingrid-storage/storage-locator/pkg/redirector EndpointSelector
//go:generate mockgen -package mock -destination util.go github.com/ingrid-storage/storage-locator/pkg/util ErrorLogger
