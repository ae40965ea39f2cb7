package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/responses"
	"github.com/familyfin/ledgerhub/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TransactionController : Ledger transaction controller struct
type TransactionController struct {
	svc *service.LedgerService
}

func NewTransactionController(svc *service.LedgerService) *TransactionController {
	return &TransactionController{svc: svc}
}

type AddTransactionRequestBody struct {
	AccountID        int64           `json:"account_id" validate:"required,gt=0"`
	RelatedAccountID int64           `json:"related_account_id" validate:"gte=0"`
	CategoryID       int64           `json:"category_id" validate:"required,gt=0"`
	Amount           decimal.Decimal `json:"amount" swaggertype:"string"`
	TransactionType  string          `json:"transaction_type" validate:"required,oneof=income expense transfer"`
	TransactionDate  Date            `json:"transaction_date"`
	Payee            string          `json:"payee" validate:"max=255"`
	Payer            string          `json:"payer" validate:"max=255"`
	Description      string          `json:"description"`
	Attachment       string          `json:"attachment" validate:"max=255"`
	Status           string          `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
}

func (body *AddTransactionRequestBody) params() service.CreateTransactionParams {
	return service.CreateTransactionParams{
		AccountID:        body.AccountID,
		RelatedAccountID: body.RelatedAccountID,
		CategoryID:       body.CategoryID,
		Amount:           body.Amount,
		TransactionType:  body.TransactionType,
		TransactionDate:  body.TransactionDate.Time,
		Payee:            body.Payee,
		Payer:            body.Payer,
		Description:      body.Description,
		Attachment:       body.Attachment,
		Status:           body.Status,
	}
}

type AddTransactionResponseBody struct {
	Transactions []service.CreatedTransaction `json:"transactions"`
}

type EditTransactionRequestBody struct {
	AccountID        *int64           `json:"account_id" validate:"omitempty,gt=0"`
	RelatedAccountID *int64           `json:"related_account_id" validate:"omitempty,gt=0"`
	CategoryID       *int64           `json:"category_id" validate:"omitempty,gt=0"`
	Amount           *decimal.Decimal `json:"amount" swaggertype:"string"`
	TransactionType  *string          `json:"transaction_type" validate:"omitempty,oneof=income expense transfer"`
	TransactionDate  *Date            `json:"transaction_date"`
	Payee            *string          `json:"payee" validate:"omitempty,max=255"`
	Payer            *string          `json:"payer" validate:"omitempty,max=255"`
	Description      *string          `json:"description"`
	Attachment       *string          `json:"attachment" validate:"omitempty,max=255"`
	Status           *string          `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
}

func (body *EditTransactionRequestBody) patch() service.TransactionPatch {
	patch := service.TransactionPatch{
		AccountID:        body.AccountID,
		RelatedAccountID: body.RelatedAccountID,
		CategoryID:       body.CategoryID,
		Amount:           body.Amount,
		TransactionType:  body.TransactionType,
		Payee:            body.Payee,
		Payer:            body.Payer,
		Description:      body.Description,
		Attachment:       body.Attachment,
		Status:           body.Status,
	}
	if body.TransactionDate != nil {
		patch.TransactionDate = &body.TransactionDate.Time
	}
	return patch
}

type SetStatusRequestBody struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// decodeAddBody accepts a single transaction object or an array of them.
func decodeAddBody(r io.Reader) ([]AddTransactionRequestBody, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		bodies := []AddTransactionRequestBody{}
		if err := json.Unmarshal(raw, &bodies); err != nil {
			return nil, err
		}
		return bodies, nil
	}
	body := AddTransactionRequestBody{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	return []AddTransactionRequestBody{body}, nil
}

// Add godoc
// @Summary      Record transactions
// @Description  Records one transaction or a batch of them. A batch is applied atomically.
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        transaction  body      AddTransactionRequestBody  true  "Transaction or array of transactions"
// @Success      200          {object}  AddTransactionResponseBody
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      409          {object}  responses.ErrorResponse
// @Failure      500          {object}  responses.ErrorResponse
// @Router       /api/business/transaction/add [post]
func (controller *TransactionController) Add(c echo.Context) error {
	bodies, err := decodeAddBody(c.Request().Body)
	if err != nil {
		c.Logger().Errorf("Failed to load add transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if len(bodies) == 0 {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	params := make([]service.CreateTransactionParams, 0, len(bodies))
	for i := range bodies {
		if err = c.Validate(&bodies[i]); err != nil {
			c.Logger().Errorf("Invalid add transaction request body at index %d: %v", i, err)
			prefix := ""
			if len(bodies) > 1 {
				prefix = fmt.Sprintf("transactions[%d].", i)
			}
			return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, prefix))
		}
		params = append(params, bodies[i].params())
	}

	created, err := controller.svc.CreateTransactions(c.Request().Context(), params)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, &AddTransactionResponseBody{Transactions: created})
}

// Edit godoc
// @Summary      Edit a transaction
// @Description  Changes the given fields of a transaction and updates every affected balance
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        id           path      int                         true  "Transaction id"
// @Param        transaction  body      EditTransactionRequestBody  true  "Fields to change"
// @Success      200          {object}  models.Transaction
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      404          {object}  responses.ErrorResponse
// @Failure      500          {object}  responses.ErrorResponse
// @Router       /api/business/transaction/edit/{id} [put]
func (controller *TransactionController) Edit(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body EditTransactionRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load edit transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid edit transaction request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, ""))
	}

	updated, err := controller.svc.EditTransaction(c.Request().Context(), id, body.patch())
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete godoc
// @Summary      Delete a transaction
// @Description  Deletes a transaction, and both legs of a transfer
// @Produce      json
// @Tags         Transaction
// @Param        id   path      int  true  "Transaction id"
// @Success      200  {object}  service.DeleteResult
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /api/business/transaction/delete/{id} [delete]
func (controller *TransactionController) Delete(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	result, err := controller.svc.DeleteTransaction(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// SetStatus godoc
// @Summary      Change the status of a transaction
// @Accept       json
// @Produce      json
// @Tags         Transaction
// @Param        id      path      int                   true  "Transaction id"
// @Param        status  body      SetStatusRequestBody  true  "New status"
// @Success      200     {object}  models.Transaction
// @Failure      400     {object}  responses.ErrorResponse
// @Failure      404     {object}  responses.ErrorResponse
// @Router       /api/business/transaction/status/{id} [patch]
func (controller *TransactionController) SetStatus(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	var body SetStatusRequestBody
	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load set status request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid set status request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.InvalidBody(err, ""))
	}
	updated, err := controller.svc.SetStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Detail godoc
// @Summary      Retrieve a transaction
// @Produce      json
// @Tags         Transaction
// @Param        id   path      int  true  "Transaction id"
// @Success      200  {object}  models.Transaction
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/business/transaction/detail/{id} [get]
func (controller *TransactionController) Detail(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	transaction, err := controller.svc.GetTransaction(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, transaction)
}

// Related godoc
// @Summary      Retrieve the other leg of a transfer
// @Produce      json
// @Tags         Transaction
// @Param        id   path      int  true  "Transaction id"
// @Success      200  {object}  []models.Transaction
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/business/transaction/related/{id} [get]
func (controller *TransactionController) Related(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	related, err := controller.svc.RelatedTransactions(c.Request().Context(), id)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	if related == nil {
		related = []models.Transaction{}
	}
	return c.JSON(http.StatusOK, related)
}

// List godoc
// @Summary      List transactions
// @Description  Returns transactions newest first
// @Produce      json
// @Tags         Transaction
// @Param        account_id        query     int     false  "Account id"
// @Param        category_id       query     int     false  "Category id, subcategories included"
// @Param        transaction_type  query     string  false  "income, expense or transfer"
// @Param        status            query     string  false  "pending, completed or cancelled"
// @Param        start_time        query     string  false  "Earliest transaction date"
// @Param        end_time          query     string  false  "Latest transaction date"
// @Param        min_amount        query     number  false  "Minimum absolute amount"
// @Param        max_amount        query     number  false  "Maximum absolute amount"
// @Param        is_transfer       query     bool    false  "Only transfers, or no transfers"
// @Param        page              query     int     false  "Page, starting at 1"
// @Param        page_size         query     int     false  "Page size"
// @Success      200               {object}  service.TransactionPage
// @Failure      400               {object}  responses.ErrorResponse
// @Router       /api/business/transaction/list [get]
func (controller *TransactionController) List(c echo.Context) error {
	filter := service.TransactionFilter{}
	err := echo.QueryParamsBinder(c).
		Int64("account_id", &filter.AccountID).
		Int64("category_id", &filter.CategoryID).
		String("transaction_type", &filter.TransactionType).
		String("status", &filter.Status).
		Int("page", &filter.Page).
		Int("page_size", &filter.PageSize).
		BindError()
	if err != nil {
		c.Logger().Errorf("Invalid list transactions query: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if filter.StartTime, err = optionalDate(c, "start_time"); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if filter.EndTime, err = optionalDate(c, "end_time"); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if filter.IsTransfer, err = optionalBool(c, "is_transfer"); err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	for name, dest := range map[string]**decimal.Decimal{"min_amount": &filter.MinAmount, "max_amount": &filter.MaxAmount} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
		}
		*dest = &value
	}

	page, err := controller.svc.ListTransactions(c.Request().Context(), filter)
	if err != nil {
		return responses.ServiceError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
