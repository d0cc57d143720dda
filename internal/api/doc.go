// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting for the study service. It translates HTTP concerns
// into study.Service calls and maps their errors to sanitized responses.
package api
