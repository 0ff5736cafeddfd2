// Package infra contains technical adapters such as the weather and routing
// clients, model loaders and metrics exporters. These packages should depend
// only on the interfaces defined in the core packages.
package infra
