// Package commerce defines the provider-agnostic commerce model: catalog,
// cart, order, customer and B2B entities, the service interfaces every
// provider adapter implements, and the registry/manager plumbing that
// turns a configuration into a ready-to-use client.
//
// Adapters (see the bridge and medusa packages) translate vendor REST
// payloads into these types. Applications depend on this package only;
// swapping the commerce backend is a configuration change:
//
//	reg := commerce.DefaultRegistry()
//	if err := bridge.Register(reg); err != nil {
//		return err
//	}
//	client, err := commerce.NewClient(ctx, commerce.Config{
//		Provider: "bridge",
//		BaseURL:  "https://bridge.internal/api/v1",
//	})
package commerce
