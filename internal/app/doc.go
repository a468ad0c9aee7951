// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle, decoupled
// from any specific entrypoint like a CLI or server.
//
// An App runs in one of three modes: converting the upload directory into
// an import directory, verifying an existing import directory, or printing
// the effective configuration.
package app
