package transport

import (
	"github.com/familyfin/ledgerhub/controllers"
	_ "github.com/familyfin/ledgerhub/docs"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterEndpoints mounts the ledger API. Mutations additionally go through strictRateLimitMiddleware.
func RegisterEndpoints(svc *service.LedgerService, e *echo.Echo, strictRateLimitMiddleware echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.GET("/health", controllers.NewHealthController(svc).Check)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", logMw)

	transactionCtrl := controllers.NewTransactionController(svc)
	transactions := api.Group("/business/transaction")
	transactions.GET("/list", transactionCtrl.List)
	transactions.GET("/detail/:id", transactionCtrl.Detail)
	transactions.GET("/related/:id", transactionCtrl.Related)
	transactions.POST("/add", transactionCtrl.Add, strictRateLimitMiddleware)
	transactions.PUT("/edit/:id", transactionCtrl.Edit, strictRateLimitMiddleware)
	transactions.DELETE("/delete/:id", transactionCtrl.Delete, strictRateLimitMiddleware)
	transactions.PATCH("/status/:id", transactionCtrl.SetStatus, strictRateLimitMiddleware)
	// the stream is long lived and stays out of the request logger
	e.GET("/api/business/transaction/stream", controllers.NewLedgerStreamController(svc).StreamEvents)

	accountCtrl := controllers.NewAccountController(svc)
	accounts := api.Group("/setting/accounts")
	accounts.GET("/list", accountCtrl.List)
	accounts.GET("/detail/:id", accountCtrl.Detail)
	accounts.GET("/verify/:id", accountCtrl.Verify)
	accounts.POST("/add", accountCtrl.Add)
	accounts.PUT("/edit/:id", accountCtrl.Edit)
	accounts.DELETE("/delete/:id", accountCtrl.Delete)
	accounts.POST("/recompute/:id", accountCtrl.Recompute, strictRateLimitMiddleware)

	accountTypeCtrl := controllers.NewAccountTypeController(svc)
	accountTypes := api.Group("/setting/accountTypes")
	accountTypes.GET("/list", accountTypeCtrl.List)
	accountTypes.POST("/add", accountTypeCtrl.Add)
	accountTypes.DELETE("/delete/:id", accountTypeCtrl.Delete)

	categoryCtrl := controllers.NewCategoryController(svc)
	categories := api.Group("/setting/category")
	categories.GET("/list", categoryCtrl.List)
	categories.GET("/detail/:id", categoryCtrl.Detail)
	categories.POST("/add", categoryCtrl.Add)
	categories.DELETE("/delete/:id", categoryCtrl.Delete)
}
