// Package handler is the entrypoint of datagen on Vercel-like serverless platforms,
// which call an exported http.HandlerFunc per request.
package handler

import (
	"net/http"
	"sync"

	"github.com/yomorun/datagen/server"
)

var (
	router http.Handler
	once   sync.Once
)

// Handler serves GET /data, the router is built on the first (cold start) request.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() { router = server.NewRouter() })

	router.ServeHTTP(w, r)
}
