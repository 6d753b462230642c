// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the three run modes (generate, dispatch-only,
// compress-only), decoupled from any specific entrypoint like a CLI.
package app
