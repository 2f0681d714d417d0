package tenant

import "net/http"

// Request headers carrying the caller's tenant identity. A real deployment
// would derive these from signed credentials; the emulator trusts headers.
const (
	HeaderAccount = "X-Cloudstub-Account"
	HeaderRegion  = "X-Cloudstub-Region"
)

// Defaults used when a request carries no tenant headers, so that simple
// curl-style usage works without any setup.
const (
	DefaultAccount = "000000000000"
	DefaultRegion  = "us-east-1"
)

// Scope identifies the tenant under which all emulated entities are
// namespaced. Scopes are never merged: two requests with different
// account/region pairs see fully independent state.
type Scope struct {
	Account string
	Region  string
}

// Default returns the scope used for requests without tenant headers.
func Default() Scope {
	return Scope{Account: DefaultAccount, Region: DefaultRegion}
}

// FromRequest resolves the tenant scope for an incoming HTTP request.
// Missing headers fall back to the defaults, never to an empty scope.
func FromRequest(r *http.Request) Scope {
	s := Default()
	if v := r.Header.Get(HeaderAccount); v != "" {
		s.Account = v
	}
	if v := r.Header.Get(HeaderRegion); v != "" {
		s.Region = v
	}
	return s
}
