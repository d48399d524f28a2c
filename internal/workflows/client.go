package workflows

import (
	"github.com/vellum-app/vellum/internal/configs"
	"github.com/vellum-app/vellum/internal/transport"
)

// buildClient constructs a transport client from the user config, applying
// environment overrides. Tests inject their own client instead.
func buildClient() (*transport.Client, error) {
	config, err := configs.LoadUserConfig()
	if err != nil {
		return nil, err
	}
	endpoints := config.ResolveEndpoints()
	return transport.NewClient(transport.Config{
		BackendPostURL:     endpoints.BackendPostURL,
		BackendGetURL:      endpoints.BackendGetURL,
		FileStoreURL:       endpoints.FileStoreURL,
		SocketServerURL:    endpoints.SocketServerURL,
		FileUploadMaxBytes: config.ResolveFileUploadMaxBytes(),
	}, nil), nil
}
