// Package clientip resolves the client address of a request that may have
// passed through proxies.
//
// Headers are consulted in this order, and the first one holding a valid
// address wins:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (leftmost entry)
//  4. X-Real-IP
//
// RemoteAddr is the fallback. Unspecified addresses such as 0.0.0.0 are
// skipped, and IPv4-mapped IPv6 addresses are reported in IPv4 form.
package clientip
