package apihelpers

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gin-gonic/gin"
)

// WriteRoutes lists the router's routes sorted by path.
func WriteRoutes(w io.Writer, routes gin.RoutesInfo) error {
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	for _, route := range routes {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", route.Method, route.Path); err != nil {
			return err
		}
	}
	return nil
}

func WriteRoutesToFile(router *gin.Engine, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteRoutes(file, router.Routes())
}
