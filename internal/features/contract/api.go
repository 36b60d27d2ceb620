package contract

import (
	"closetshare/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContractApi struct {
	controller *ContractController
}

func NewContractApi(controller *ContractController) *ContractApi {
	return &ContractApi{controller: controller}
}

// Setup registers all contract-related routes
func (h *ContractApi) Setup(app *fiber.App) {
	authed := app.Group("/api", middleware.AuthMiddleware())

	authed.Post("/contracts", h.controller.ProposeContract)
	authed.Patch("/contracts/finalize/:id", h.controller.FinalizeContract)
	authed.Patch("/contracts/:id", h.controller.UpdateContract)
	authed.Delete("/contracts/:id", h.controller.DeleteContract)
	authed.Get("/contracts/export", h.controller.ExportContracts)
	authed.Get("/contracts/user/:user", h.controller.GetUserContracts)
	authed.Get("/contracts/owner/:owner", h.controller.GetContractsByOwner)
	authed.Get("/contracts/borrower/:borrower", h.controller.GetContractsByBorrower)
	authed.Get("/contracts/fromItem/:item", h.controller.GetContractFromItem)
}
