package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"pmfin-backend/config"
	apiv1 "pmfin-backend/controllers/v1"
	"pmfin-backend/controllers/v1/dict"
	"pmfin-backend/fiberlog"
	"pmfin-backend/initializers"
	"pmfin-backend/lib/events"
	"pmfin-backend/lib/ws"
	"pmfin-backend/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: int(config.Conf.App.BodyLimitMb) * 1024 * 1024,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: config.Conf.App.SwaggerFile,
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := app.Group("/api/v1")
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PATCH, DELETE, PUT",
		AllowCredentials: false,
	}))
	apiV1.Use(middleware.WithBodyLimit(config.Conf.App.BodyLimitMb))
	if config.Conf.App.ErrNotifyUrl != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyUrl))
	}
	apiv1.InitAuthApiRouters(apiV1)

	//protected
	protected := apiV1.Group("", middleware.AuthorizationRequired(), middleware.ActiveUserRequired())
	ws.InitWs(protected)
	apiv1.InitNavigationApiRouters(protected)
	apiv1.InitNotificationApiRouters(protected)

	//rbac
	api := protected.Group("", middleware.RbacMiddleware())
	apiv1.InitUsersApiRouters(api)
	apiv1.InitProjectApiRouters(api)
	apiv1.InitTeamApiRouters(api)
	apiv1.InitTaskApiRouters(api)
	apiv1.InitInvoiceApiRouters(api)
	apiv1.InitBillingApiRouters(api)
	apiv1.InitReimbursementApiRouters(api)
	apiv1.InitAnalyticsApiRouters(api)

	//dict
	dicts := api.Group("/dict")
	dict.InitVendorDictApiRouters(dicts)
	dict.InitTaxDictApiRouters(dicts)
	dict.InitCategoryDictApiRouters(dicts)
	dict.InitRoleDictApiRouters(dicts)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		if err := events.Instance.Close(); err != nil {
			log.WithError(err).Error("failed to close event producer")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Error(err)
		cancel()
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
