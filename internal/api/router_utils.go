package api

import (
	"log"
	"strings"

	"github.com/gorilla/mux"
)

// LogRoutes walks the router and logs every registered route, one line per
// route. Handy at startup when wiring changes.
func LogRoutes(r *mux.Router) {
	_ = r.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		// If no methods are specified, assume all methods
		methods, _ := route.GetMethods()
		methodStr := "ANY"
		if len(methods) > 0 {
			methodStr = strings.Join(methods, ",")
		}

		log.Printf("Route %s %s", methodStr, pathTemplate)
		return nil
	})
}
