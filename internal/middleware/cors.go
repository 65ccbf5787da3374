package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets any origin open a game; there are no credentials to protect.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
