package main

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/giovannecorrea/spyroom/config"
	"github.com/giovannecorrea/spyroom/game"
	"github.com/giovannecorrea/spyroom/logger"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		// Non-browser clients send no Origin header.
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	logger.Setup(config.Envs.GIN_MODE != "release")
	if config.Envs.GIN_MODE == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	allowedOrigins := strings.Split(config.Envs.ALLOWED_ORIGINS, ",")

	store := game.NewStore(game.NewCodeGenerator(), game.NewLocationCatalog())
	hub := game.NewHub()
	gameHandler := game.NewHandler(store, hub, config.Envs.PUBLIC_URL)

	r := CreateServer(allowedOrigins)
	r.GET("/ws", gameHandler.WebsocketHandler)
	r.GET("/rooms/:code/qr", gameHandler.RoomQRHandler)

	log.Info().Str("addr", config.Envs.ADDR).Msg("server listening")
	if err := r.Run(config.Envs.ADDR); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
