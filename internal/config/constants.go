package config

// Base application details
const AppName = "stmtree"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "stmtree.log"

// These mirror the package defaults and are applied by NewDefaultConfig.
const DefaultGrammar = "sql"
const DefaultWorkers = 4
const DefaultShards = 32
