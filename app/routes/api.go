package routes

import (
	"github.com/arifhossen/shopd/app/controllers"
	"github.com/arifhossen/shopd/app/repositories"
	"github.com/arifhossen/shopd/app/services"
	"github.com/arifhossen/shopd/pkg/middleware"
	"github.com/arifhossen/shopd/pkg/router"
)

// RegisterAPI wires the full shop surface. The path layout and per-route
// gate placement mirror the deployed contract: reads and deletes sit behind
// the token gate, add and update historically do not.
func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController(
		services.NewAuthService(repositories.NewUserRepository()),
	)
	productController := controllers.NewProductController(
		services.NewProductService(repositories.NewProductRepository()),
	)

	r.Get("/", "liveness", controllers.Liveness)

	// Credential service
	r.Post("/jwt", "auth.token", authController.IssueToken)
	r.Post("/signup", "auth.signup", authController.Signup)
	r.Post("/login", "auth.login", authController.Login)

	// Catalog service
	r.Get("/shoe/{email}", "products.list", productController.ListByOwner, middleware.VerifyToken)
	r.Get("/singleshoe/{id}/{email}", "products.show", productController.GetOne, middleware.VerifyToken)
	r.Post("/addshoe", "products.add", productController.Add)
	r.Patch("/updateshoe/{id}", "products.update", productController.Update)
	r.Delete("/deleteshoe", "products.delete", productController.DeleteMany, middleware.VerifyToken)
	r.Delete("/deleteall", "products.delete_all", productController.DeleteAll, middleware.VerifyToken)
}
