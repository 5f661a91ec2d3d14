// Package uri implements a parser and builder for Uniform Resource Locators.
//
// Components are kept decoded. Each of them reports the exact length of its
// serialized form through Len, so a whole URL is written into a single
// allocation.
//
// Reference:
//
// - https://datatracker.ietf.org/doc/html/rfc3986
package uri
