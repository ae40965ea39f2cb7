package controllers

import (
	"net/http"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/responses"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
)

type CategoryController struct {
	svc *service.LedgerService
}

func NewCategoryController(svc *service.LedgerService) *CategoryController {
	return &CategoryController{svc: svc}
}

type CategoryRequestBody struct {
	Name         string `json:"name" validate:"required,max=50"`
	Type         string `json:"type" validate:"required,oneof=income expense"`
	ParentID     int64  `json:"parent_id" validate:"gte=0"`
	Icon         string `json:"icon" validate:"max=100"`
	Description  string `json:"description"`
	InStatistics *bool  `json:"in_statistics"`
}

// List godoc
// @Summary      List categories as a tree
// @Produce      json
// @Tags         Category
// @Param        type  query     string  false  "income or expense"
// @Success      200   {object}  []service.CategoryNode
// @Router       /api/setting/category/list [get]
func (controller *CategoryController) List(c echo.Context) error {
	nodes, err := controller.svc.ListCategories(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, nodes)
}

// Detail godoc
// @Summary      Retrieve a category
// @Produce      json
// @Tags         Category
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  models.Category
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/setting/category/detail/{id} [get]
func (controller *CategoryController) Detail(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	category, err := controller.svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// Add godoc
// @Summary      Create a category
// @Accept       json
// @Produce      json
// @Tags         Category
// @Param        category  body      CategoryRequestBody  true  "Category"
// @Success      200       {object}  models.Category
// @Failure      400       {object}  responses.ErrorResponse
// @Failure      409       {object}  responses.ErrorResponse
// @Router       /api/setting/category/add [post]
func (controller *CategoryController) Add(c echo.Context) error {
	var body CategoryRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load category request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid category request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, ""))
	}
	category := &models.Category{
		Name:         body.Name,
		Type:         body.Type,
		ParentID:     body.ParentID,
		Icon:         body.Icon,
		Description:  body.Description,
		InStatistics: true,
	}
	if body.InStatistics != nil {
		category.InStatistics = *body.InStatistics
	}
	created, err := controller.svc.CreateCategory(c.Request().Context(), category)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, created)
}

// Delete godoc
// @Summary      Delete an unused category
// @Tags         Category
// @Param        id   path  int  true  "Category id"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /api/setting/category/delete/{id} [delete]
func (controller *CategoryController) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := controller.svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return responses.ServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
