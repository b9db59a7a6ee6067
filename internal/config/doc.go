// Package config loads and merges the salim client configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged with mergo in priority order (environment wins over
// flags, flags over the JSON file), then projected into the [ClientConfig]
// view consumed by the rest of the application. Development defaults are
// applied last, so a bare `salim` invocation talks to a local backend at
// http://localhost:8000/api/v1 with a salim.db store next to the working
// directory.
package config
