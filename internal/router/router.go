package router

import (
	"github.com/cocosip/go-huffman-codec/internal/handler"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	TableHandler *handler.TableHandler
}

func Register(r *gin.Engine, d Dependencies) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	v1 := r.Group("/api/v1")
	{
		tables := v1.Group("/tables")
		{
			tables.POST("", d.TableHandler.Create)
			tables.GET("", d.TableHandler.List)
			tables.GET("/:id", d.TableHandler.GetByID)
			tables.POST("/:id/encode", d.TableHandler.Encode)
			tables.POST("/:id/decode", d.TableHandler.Decode)
		}
	}
}
