package integration_tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	TestSuite
	cash   int64
	bank   int64
	salary int64
	food   int64
	moves  int64
}

func (suite *TransactionTestSuite) SetupTest() {
	suite.TestSuite.SetupTest()
	suite.cash = suite.createAccount("Wallet", "cash")
	suite.bank = suite.createAccount("Checking", "debit_card")
	suite.salary = suite.createCategory("Salary", "income", 0)
	suite.food = suite.createCategory("Food", "expense", 0)
	suite.moves = suite.createCategory("Transfers", "expense", 0)
}

func (suite *TransactionTestSuite) entry(accountID int64, transactionType, amount, date string) ExpectedAddTransactionRequestBody {
	categoryID := suite.food
	switch transactionType {
	case "income":
		categoryID = suite.salary
	case "transfer":
		categoryID = suite.moves
	}
	return ExpectedAddTransactionRequestBody{
		AccountID:       accountID,
		CategoryID:      categoryID,
		Amount:          amount,
		TransactionType: transactionType,
		TransactionDate: date,
	}
}

func (suite *TransactionTestSuite) assertDecimal(expected string, actual decimal.Decimal) {
	suite.T().Helper()
	suite.True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func (suite *TransactionTestSuite) TestAddSingleAndBackdate() {
	first := suite.addTransactions(suite.entry(suite.cash, "income", "100", "2024-01-01"))
	suite.Require().Len(first, 1)
	suite.assertDecimal("100", first[0].BalanceAfter)
	suite.Equal("T202401200001", first[0].TransactionNo)

	second := suite.addTransactions(suite.entry(suite.cash, "expense", "30.50", "2024-01-02 09:30:00"))
	suite.assertDecimal("-30.50", second[0].Amount)
	suite.assertDecimal("69.50", second[0].BalanceAfter)

	backdated := suite.addTransactions(suite.entry(suite.cash, "expense", "20", "2023-12-31T10:00:00Z"))
	suite.assertDecimal("-20", backdated[0].BalanceAfter)
	suite.assertDecimal("80", suite.getTransaction(first[0].ID).BalanceAfter)
	suite.assertDecimal("49.50", suite.getTransaction(second[0].ID).BalanceAfter)
	suite.assertDecimal("49.50", suite.getAccount(suite.cash).Balance)
}

func (suite *TransactionTestSuite) TestAddBatchIsAtomic() {
	transfer := suite.entry(suite.cash, "transfer", "40", "2024-01-03")
	transfer.RelatedAccountID = suite.bank
	created := suite.addTransactions([]ExpectedAddTransactionRequestBody{
		suite.entry(suite.cash, "income", "100", "2024-01-02"),
		transfer,
	})
	suite.Require().Len(created, 2)
	suite.NotZero(created[1].RelatedTransactionID)
	suite.assertDecimal("60", suite.getAccount(suite.cash).Balance)
	suite.assertDecimal("40", suite.getAccount(suite.bank).Balance)

	bad := suite.entry(suite.bank, "income", "5", "2024-01-04")
	bad.CategoryID = suite.food
	rec := suite.do(http.MethodPost, "/api/business/transaction/add", []ExpectedAddTransactionRequestBody{
		suite.entry(suite.bank, "expense", "10", "2024-01-04"),
		bad,
	})
	errResp := checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("transactions[1].category_id", errResp.Field)
	suite.assertDecimal("40", suite.getAccount(suite.bank).Balance)
}

func (suite *TransactionTestSuite) TestAddRejectsBadInput() {
	for name, body := range map[string]interface{}{
		"zero amount":       suite.entry(suite.cash, "income", "0", "2024-01-02"),
		"unknown type":      suite.entry(suite.cash, "refund", "1", "2024-01-02"),
		"stale date":        suite.entry(suite.cash, "income", "1", "2023-11-01"),
		"transfer to self":  ExpectedAddTransactionRequestBody{AccountID: suite.cash, RelatedAccountID: suite.cash, CategoryID: suite.moves, Amount: "1", TransactionType: "transfer", TransactionDate: "2024-01-02"},
		"malformed date":    map[string]interface{}{"account_id": suite.cash, "category_id": suite.salary, "amount": "1", "transaction_type": "income", "transaction_date": "02/01/2024"},
		"missing account":   suite.entry(0, "income", "1", "2024-01-02"),
		"empty batch":       []ExpectedAddTransactionRequestBody{},
		"invalid json body": "not a transaction",
	} {
		rec := suite.do(http.MethodPost, "/api/business/transaction/add", body)
		suite.Equal(http.StatusBadRequest, rec.Code, name)
	}

	rec := suite.do(http.MethodPost, "/api/business/transaction/add", suite.entry(9999, "income", "1", "2024-01-02"))
	checkErrResponse(&suite.TestSuite, rec, http.StatusNotFound)
}

func (suite *TransactionTestSuite) TestRejectedFieldIsNamed() {
	rec := suite.do(http.MethodPost, "/api/business/transaction/add", suite.entry(suite.cash, "refund", "1", "2024-01-02"))
	errResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("transaction_type", errResponse.Field)
	suite.Equal("must be one of income expense transfer", errResponse.Message)

	rec = suite.do(http.MethodPost, "/api/business/transaction/add", []ExpectedAddTransactionRequestBody{
		suite.entry(suite.cash, "income", "1", "2024-01-02"),
		suite.entry(suite.cash, "refund", "1", "2024-01-02"),
	})
	errResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("transactions[1].transaction_type", errResponse.Field)

	rec = suite.do(http.MethodPost, "/api/business/transaction/add", suite.entry(suite.cash, "income", "0.001", "2024-01-02"))
	errResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("amount", errResponse.Field)

	income := suite.addTransactions(suite.entry(suite.cash, "income", "5", "2024-01-02"))[0]
	rec = suite.do(http.MethodPut, fmt.Sprintf("/api/business/transaction/edit/%d", income.ID), map[string]interface{}{
		"transaction_type": "refund",
	})
	errResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("transaction_type", errResponse.Field)

	rec = suite.do(http.MethodPatch, fmt.Sprintf("/api/business/transaction/status/%d", income.ID), map[string]string{"status": "lost"})
	errResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("status", errResponse.Field)

	rec = suite.do(http.MethodPost, "/api/setting/accounts/add", map[string]interface{}{
		"account_name": "Savings",
		"type_id":      suite.accountTypeID("cash"),
		"currency":     "EURO",
	})
	errResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	suite.Equal("currency", errResponse.Field)
}

func (suite *TransactionTestSuite) TestEditDeleteAndStatus() {
	income := suite.addTransactions(suite.entry(suite.cash, "income", "100", "2024-01-01"))[0]
	expense := suite.addTransactions(suite.entry(suite.cash, "expense", "10", "2024-01-05"))[0]

	updated := &ExpectedTransaction{}
	suite.decode(suite.do(http.MethodPut, fmt.Sprintf("/api/business/transaction/edit/%d", income.ID), map[string]interface{}{
		"amount":      "150",
		"description": "january salary",
	}), http.StatusOK, updated)
	suite.assertDecimal("150", updated.BalanceAfter)
	suite.Equal("january salary", updated.Description)
	suite.assertDecimal("140", suite.getTransaction(expense.ID).BalanceAfter)

	// moving the income to another account
	suite.decode(suite.do(http.MethodPut, fmt.Sprintf("/api/business/transaction/edit/%d", income.ID), map[string]interface{}{
		"account_id": suite.bank,
	}), http.StatusOK, updated)
	suite.assertDecimal("-10", suite.getAccount(suite.cash).Balance)
	suite.assertDecimal("150", suite.getAccount(suite.bank).Balance)

	status := &ExpectedTransaction{}
	suite.decode(suite.do(http.MethodPatch, fmt.Sprintf("/api/business/transaction/status/%d", expense.ID), map[string]string{
		"status": "cancelled",
	}), http.StatusOK, status)
	suite.Equal("cancelled", status.Status)
	suite.assertDecimal("-10", suite.getAccount(suite.cash).Balance)

	rec := suite.do(http.MethodPatch, fmt.Sprintf("/api/business/transaction/status/%d", expense.ID), map[string]string{"status": "lost"})
	checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)

	deleted := &ExpectedDeleteResponseBody{}
	suite.decode(suite.do(http.MethodDelete, fmt.Sprintf("/api/business/transaction/delete/%d", expense.ID), nil), http.StatusOK, deleted)
	suite.Equal(expense.ID, deleted.ID)
	suite.True(deleted.Cascaded)
	suite.assertDecimal("0", suite.getAccount(suite.cash).Balance)

	checkErrResponse(&suite.TestSuite, suite.do(http.MethodDelete, fmt.Sprintf("/api/business/transaction/delete/%d", expense.ID), nil), http.StatusNotFound)
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodGet, "/api/business/transaction/detail/abc", nil), http.StatusBadRequest)
}

func (suite *TransactionTestSuite) TestTransferLegs() {
	transfer := suite.entry(suite.cash, "transfer", "25", "2024-01-03")
	transfer.RelatedAccountID = suite.bank
	source := suite.addTransactions(transfer)[0]

	related := []ExpectedTransaction{}
	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/business/transaction/related/%d", source.ID), nil), http.StatusOK, &related)
	suite.Require().Len(related, 1)
	destination := related[0]
	suite.Equal(source.TransactionNo+"-R", destination.TransactionNo)
	suite.Equal(suite.bank, destination.AccountID)
	suite.assertDecimal("25", destination.Amount)

	suite.decode(suite.do(http.MethodPut, fmt.Sprintf("/api/business/transaction/edit/%d", destination.ID), map[string]interface{}{
		"amount": "30",
	}), http.StatusOK, &ExpectedTransaction{})
	suite.assertDecimal("-30", suite.getAccount(suite.cash).Balance)
	suite.assertDecimal("30", suite.getAccount(suite.bank).Balance)

	deleted := &ExpectedDeleteResponseBody{}
	suite.decode(suite.do(http.MethodDelete, fmt.Sprintf("/api/business/transaction/delete/%d", destination.ID), nil), http.StatusOK, deleted)
	suite.Equal(source.ID, deleted.RelatedID)
	suite.assertDecimal("0", suite.getAccount(suite.cash).Balance)
	suite.assertDecimal("0", suite.getAccount(suite.bank).Balance)

	income := suite.addTransactions(suite.entry(suite.cash, "income", "1", "2024-01-03"))[0]
	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/business/transaction/related/%d", income.ID), nil), http.StatusOK, &related)
	suite.Empty(related)
}

func (suite *TransactionTestSuite) TestList() {
	suite.addTransactions([]ExpectedAddTransactionRequestBody{
		suite.entry(suite.cash, "income", "100", "2024-01-01"),
		suite.entry(suite.cash, "expense", "12", "2024-01-05"),
		suite.entry(suite.bank, "expense", "300", "2024-01-07"),
	})

	page := &ExpectedTransactionPage{}
	suite.decode(suite.do(http.MethodGet, "/api/business/transaction/list", nil), http.StatusOK, page)
	suite.Equal(3, page.Total)
	suite.Equal(1, page.Page)
	suite.Require().Len(page.List, 3)
	suite.Equal(suite.bank, page.List[0].AccountID)

	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/business/transaction/list?account_id=%d&transaction_type=expense", suite.cash), nil), http.StatusOK, page)
	suite.Equal(1, page.Total)

	suite.decode(suite.do(http.MethodGet, "/api/business/transaction/list?min_amount=50&max_amount=200", nil), http.StatusOK, page)
	suite.Equal(1, page.Total)
	suite.assertDecimal("100", page.List[0].Amount)

	suite.decode(suite.do(http.MethodGet, "/api/business/transaction/list?start_time=2024-01-02&end_time=2024-01-06&page_size=1", nil), http.StatusOK, page)
	suite.Equal(1, page.Total)
	suite.Equal(1, page.PageSize)

	for _, query := range []string{"account_id=x", "min_amount=lots", "is_transfer=maybe", "start_time=yesterday"} {
		rec := suite.do(http.MethodGet, "/api/business/transaction/list?"+query, nil)
		suite.Equal(http.StatusBadRequest, rec.Code, query)
	}
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}
