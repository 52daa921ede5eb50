// Package middleware holds the inbound HTTP pipeline wrapped around the
// workflow, command and view handlers. main registers it on the chi router
// in this order:
//
//	Recovery, RequestID, CorrelationID, OpenTelemetry, Logging, Timeout
//
// Logging and OpenTelemetry label requests with the matched route and the
// workflow they address. chi resolves both only while serving, so these
// two must be registered with Use on the router itself.
package middleware

// processIDParam is the chi URL parameter naming a workflow instance.
const processIDParam = "processId"
