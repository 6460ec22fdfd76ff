package httpclient

import (
	"github.com/kbukum/fuel/provider"
)

// compile-time assertions
var _ provider.RequestResponse[*Request, *Response] = (*Adapter)(nil)
var _ Engine = (*Adapter)(nil)

// ProviderEngine adapts a RequestResponse provider, such as an Adapter
// wrapped in provider middleware, to the Engine interface.
func ProviderEngine(p provider.RequestResponse[*Request, *Response]) Engine {
	return EngineFunc(p.Execute)
}
