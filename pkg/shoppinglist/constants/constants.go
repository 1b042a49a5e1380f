// Package constants defines shared constants, types, and configuration values
// used throughout the shopping list application.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by the config package.
const (
	DatabasePathEnvVar = "SHOPPINGLIST_DB_PATH"
	LogPathEnvVar      = "SHOPPINGLIST_LOG_PATH"
	LogLevelEnvVar     = "SHOPPINGLIST_LOG_LEVEL"
	LanguageEnvVar     = "SHOPPINGLIST_LANG"
	StorageEnvVar      = "SHOPPINGLIST_STORAGE"
	MetricsAddrEnvVar  = "SHOPPINGLIST_METRICS_ADDR"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// Mutation identifies one of the write operations the screen state exposes.
// Each mutation has its own loading flag.
type Mutation int

const (
	MutationCreateShoppingList Mutation = iota
	MutationUpdateShoppingList
	MutationCreateProduct
	MutationDeleteProduct
)

// Mutations lists every Mutation in declaration order.
var Mutations = []Mutation{
	MutationCreateShoppingList,
	MutationUpdateShoppingList,
	MutationCreateProduct,
	MutationDeleteProduct,
}

func (m Mutation) GetName() string {
	switch m {
	case MutationCreateShoppingList:
		return "create_shopping_list"
	case MutationUpdateShoppingList:
		return "update_shopping_list"
	case MutationCreateProduct:
		return "create_product"
	case MutationDeleteProduct:
		return "delete_product"
	default:
		return "unknown"
	}
}

func (m Mutation) String() string {
	return m.GetName()
}

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Defaults applied before any config file or environment variable.
const (
	DefaultDatabaseFile  = "shoppinglist.db"
	DefaultConfigFile    = "config.toml"
	DefaultLanguage      = "en"
	DefaultLogLevel      = "info"
	DefaultFailureBuffer = 16              // Pending mutation failures kept for Failures()
	DefaultSettleTimeout = 5 * time.Second // How long CLI commands wait for a settled snapshot
)

// DefaultProductQuantity is used when a product is added without a quantity.
const DefaultProductQuantity int64 = 1
