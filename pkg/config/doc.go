// Package config defines the gateway's configuration schema and loading.
//
// Configuration is read from a YAML file, defaults are applied for any
// omitted fields, and TRITON_* environment variables override the result.
// The file is optional: when it does not exist, the gateway runs on
// defaults plus environment overrides, which covers the common deployment
// where only TRITON_SERVER_LISTEN_ADDRESS, TRITON_STORE_PATH and
// TRITON_AI_API_KEY are set.
//
// Loading sequence:
//
//  1. Parse YAML from file (if present)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// A Watcher built on fsnotify can observe the file for changes after
// startup; see Watch.
package config
