package cmd

import (
	"fmt"
	"time"

	"github.com/klwxsrx/deskbooking/pkg/env"
	"github.com/klwxsrx/deskbooking/pkg/http"
	"github.com/klwxsrx/deskbooking/pkg/strings"
)

const defaultHTTPClientTimeout = 10 * time.Second

type HTTPClientFactory struct {
	impl http.ClientFactory
}

func NewHTTPClientFactory(
	opts ...http.ClientOption,
) HTTPClientFactory {
	return HTTPClientFactory{
		impl: http.NewClientFactory(opts...),
	}
}

// MustInitClient reads <DEST>_SERVICE_URL and the optional <DEST>_SERVICE_TIMEOUT, e.g. MAIL_SERVICE_URL for "mail"
func (f HTTPClientFactory) MustInitClient(dest http.Destination, extraOpts ...http.ClientOption) http.Client {
	envPrefix := strings.ToScreamingSnakeCase(string(dest))
	host := env.Must(env.Parse[string](fmt.Sprintf("%s_SERVICE_URL", envPrefix)))
	timeout := env.Must(env.ParseWithDefault(fmt.Sprintf("%s_SERVICE_TIMEOUT", envPrefix), defaultHTTPClientTimeout))

	opts := make([]http.ClientOption, 0, len(extraOpts)+1)
	opts = append(opts, http.WithRequestTimeout(timeout))
	opts = append(opts, extraOpts...)

	return f.impl.InitClient(dest, host, opts...)
}
