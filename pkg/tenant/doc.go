// Package tenant resolves the account/region scope an emulated request
// operates under.
//
// Every store in cloudstub namespaces its state by tenant.Scope. The
// resolver reads the scope from request headers and substitutes stable
// defaults when they are absent; it performs no authentication — the
// emulator exists to exercise client code, not to guard data.
package tenant
