package l10nmgr

import "github.com/goliatone/go-l10nmgr/internal/runtimeconfig"

// MaxExpansionDepth is the hard ceiling for include-descendants expansion.
const MaxExpansionDepth = runtimeconfig.MaxExpansionDepth

var (
	ErrExpansionDepthInvalid   = runtimeconfig.ErrExpansionDepthInvalid
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrReferenceTablesRequired = runtimeconfig.ErrReferenceTablesRequired
	ErrTableNameInvalid        = runtimeconfig.ErrTableNameInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrActivityChannelRequired = runtimeconfig.ErrActivityChannelRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config          = runtimeconfig.Config
	ExpansionConfig = runtimeconfig.ExpansionConfig
	TablesConfig    = runtimeconfig.TablesConfig
	TableOptions    = runtimeconfig.TableOptions
	StorageConfig   = runtimeconfig.StorageConfig
	CacheConfig     = runtimeconfig.CacheConfig
	Features        = runtimeconfig.Features
	LoggingConfig   = runtimeconfig.LoggingConfig
	ActivityConfig  = runtimeconfig.ActivityConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
