// Package api handles incoming HTTP requests for the todo service: path and
// body decoding, one record store call per request on a pooled connection,
// and response encoding. Routing lives in cmd/server.
package api
