package controllers

import (
	"net/http"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/responses"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// AccountController : Financial account controller struct
type AccountController struct {
	svc *service.LedgerService
}

func NewAccountController(svc *service.LedgerService) *AccountController {
	return &AccountController{svc: svc}
}

// AccountRequestBody carries no balance: balances only move through transactions.
type AccountRequestBody struct {
	AccountName   string          `json:"account_name" validate:"max=100"`
	AccountNumber string          `json:"account_number" validate:"max=50"`
	TypeID        int64           `json:"type_id" validate:"gte=0"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	Institution   string          `json:"institution" validate:"max=100"`
	CreditLimit   decimal.Decimal `json:"credit_limit" swaggertype:"string"`
	IsActive      *bool           `json:"is_active"`
	OpeningDate   *Date           `json:"opening_date"`
	SortOrder     int             `json:"sort_order"`
	Description   string          `json:"description"`
}

func (body *AccountRequestBody) params() service.AccountParams {
	params := service.AccountParams{
		AccountName:   body.AccountName,
		AccountNumber: body.AccountNumber,
		TypeID:        body.TypeID,
		Currency:      body.Currency,
		Institution:   body.Institution,
		CreditLimit:   body.CreditLimit,
		IsActive:      body.IsActive,
		SortOrder:     body.SortOrder,
		Description:   body.Description,
	}
	if body.OpeningDate != nil {
		params.OpeningDate = &body.OpeningDate.Time
	}
	return params
}

func (controller *AccountController) bindBody(c echo.Context) (*AccountRequestBody, error) {
	var body AccountRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load account request body: %v", err)
		return nil, err
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid account request body: %v", err)
		return nil, err
	}
	return &body, nil
}

// Add godoc
// @Summary      Open an account
// @Description  Creates an account with a zero balance
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        account  body      AccountRequestBody  true  "Account"
// @Success      200      {object}  models.Account
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Router       /api/setting/accounts/add [post]
func (controller *AccountController) Add(c echo.Context) error {
	body, err := controller.bindBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, ""))
	}
	account, err := controller.svc.CreateAccount(c.Request().Context(), body.params())
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// Edit godoc
// @Summary      Edit an account
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        id       path      int                 true  "Account id"
// @Param        account  body      AccountRequestBody  true  "Fields to change"
// @Success      200      {object}  models.Account
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Router       /api/setting/accounts/edit/{id} [put]
func (controller *AccountController) Edit(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	body, err := controller.bindBody(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, ""))
	}
	account, err := controller.svc.UpdateAccount(c.Request().Context(), id, body.params())
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// Delete godoc
// @Summary      Delete an unused account
// @Tags         Account
// @Param        id   path  int  true  "Account id"
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /api/setting/accounts/delete/{id} [delete]
func (controller *AccountController) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := controller.svc.DeleteAccount(c.Request().Context(), id); err != nil {
		return responses.ServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Detail godoc
// @Summary      Retrieve an account
// @Produce      json
// @Tags         Account
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  models.Account
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/setting/accounts/detail/{id} [get]
func (controller *AccountController) Detail(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	account, err := controller.svc.GetAccount(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, account)
}

// List godoc
// @Summary      List accounts
// @Produce      json
// @Tags         Account
// @Param        keyword     query     string  false  "Matches name or number"
// @Param        type_id     query     int     false  "Account type"
// @Param        is_active   query     bool    false  "Active flag"
// @Param        sort_field  query     string  false  "account_name, balance, opening_date, created_at or updated_at"
// @Param        sort_desc   query     bool    false  "Descending order"
// @Param        page        query     int     false  "Page, starting at 1"
// @Param        page_size   query     int     false  "Page size"
// @Success      200         {object}  service.AccountPage
// @Router       /api/setting/accounts/list [get]
func (controller *AccountController) List(c echo.Context) error {
	filter := service.AccountFilter{}
	err := echo.QueryParamsBinder(c).
		String("keyword", &filter.Keyword).
		Int64("type_id", &filter.TypeID).
		String("sort_field", &filter.SortField).
		Bool("sort_desc", &filter.SortDesc).
		Int("page", &filter.Page).
		Int("page_size", &filter.PageSize).
		BindError()
	if err != nil {
		c.Logger().Errorf("Invalid list accounts query: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if filter.IsActive, err = optionalBool(c, "is_active"); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	page, err := controller.svc.ListAccounts(c.Request().Context(), filter)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// Verify godoc
// @Summary      Verify the balance chain of an account
// @Description  Replays the amounts of an account and reports every snapshot that disagrees
// @Produce      json
// @Tags         Account
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  service.ChainReport
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/setting/accounts/verify/{id} [get]
func (controller *AccountController) Verify(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	report, err := controller.svc.VerifyAccount(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

// Recompute godoc
// @Summary      Repair the balance chain of an account
// @Description  Rewrites every snapshot and the balance from a replay. Returns the state found before the repair.
// @Produce      json
// @Tags         Account
// @Param        id   path      int  true  "Account id"
// @Success      200  {object}  service.ChainReport
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/setting/accounts/recompute/{id} [post]
func (controller *AccountController) Recompute(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	report, err := controller.svc.RecomputeAccount(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

type AccountTypeController struct {
	svc *service.LedgerService
}

func NewAccountTypeController(svc *service.LedgerService) *AccountTypeController {
	return &AccountTypeController{svc: svc}
}

type AccountTypeRequestBody struct {
	Name         string `json:"name" validate:"required,max=50"`
	Icon         string `json:"icon" validate:"max=100"`
	Color        string `json:"color" validate:"max=20"`
	IsDigital    bool   `json:"is_digital"`
	CanOverdraft bool   `json:"can_overdraft"`
	Remark       string `json:"remark"`
}

// List godoc
// @Summary      List account types
// @Produce      json
// @Tags         Account
// @Success      200  {object}  []models.AccountType
// @Router       /api/setting/accountTypes/list [get]
func (controller *AccountTypeController) List(c echo.Context) error {
	types, err := controller.svc.ListAccountTypes(c.Request().Context())
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, types)
}

// Add godoc
// @Summary      Create an account type
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        type  body      AccountTypeRequestBody  true  "Account type"
// @Success      200   {object}  models.AccountType
// @Failure      400   {object}  responses.ErrorResponse
// @Failure      409   {object}  responses.ErrorResponse
// @Router       /api/setting/accountTypes/add [post]
func (controller *AccountTypeController) Add(c echo.Context) error {
	var body AccountTypeRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load account type request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid account type request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, ""))
	}
	accountType, err := controller.svc.CreateAccountType(c.Request().Context(), &models.AccountType{
		Name:         body.Name,
		Icon:         body.Icon,
		Color:        body.Color,
		IsDigital:    body.IsDigital,
		CanOverdraft: body.CanOverdraft,
		Remark:       body.Remark,
	})
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, accountType)
}

// Delete godoc
// @Summary      Delete an unused account type
// @Tags         Account
// @Param        id   path  int  true  "Account type id"
// @Success      204
// @Failure      409  {object}  responses.ErrorResponse
// @Router       /api/setting/accountTypes/delete/{id} [delete]
func (controller *AccountTypeController) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := controller.svc.DeleteAccountType(c.Request().Context(), id); err != nil {
		return responses.ServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
