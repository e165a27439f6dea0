package cmd

import (
	"fmt"

	"github.com/klwxsrx/go-storefront/pkg/env"
	pkghttp "github.com/klwxsrx/go-storefront/pkg/http"
	"github.com/klwxsrx/go-storefront/pkg/strings"
)

// DestinationURLEnv names the variable holding the base url of dest, e.g. STOREFRONT_API_URL.
func DestinationURLEnv(dest pkghttp.Destination) string {
	return fmt.Sprintf("%s_URL", strings.ToScreamingSnakeCase(string(dest)))
}

func DestinationURL(dest pkghttp.Destination, fallback string) (string, error) {
	return env.ParseOptional[string](DestinationURLEnv(dest), fallback)
}
