package main

import (
	"github.com/fwojciec/shopinsight/gin"
	gingonic "github.com/gin-gonic/gin"
)

// Run executes the serve command until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	gingonic.SetMode(gingonic.ReleaseMode)

	server := gin.NewServer(deps.Insights, deps.Brands, deps.Logger)
	server.Addr = c.Addr
	return server.Run(deps.Ctx)
}
