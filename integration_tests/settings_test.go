package integration_tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/familyfin/ledgerhub/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SettingsTestSuite struct {
	TestSuite
}

func (suite *SettingsTestSuite) TestHealth() {
	resp := map[string]string{}
	suite.decode(suite.do(http.MethodGet, "/health", nil), http.StatusOK, &resp)
	suite.Equal("OK", resp["result"])
}

func (suite *SettingsTestSuite) TestSwaggerDoc() {
	doc := struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}{}
	suite.decode(suite.do(http.MethodGet, "/swagger/doc.json", nil), http.StatusOK, &doc)
	suite.Equal("2.0", doc.Swagger)
	suite.Contains(doc.Paths, "/api/business/transaction/add")
	suite.Contains(doc.Paths, "/api/setting/accounts/recompute/{id}")
}

func (suite *SettingsTestSuite) TestAccountEndpoints() {
	account := &ExpectedAccount{}
	suite.decode(suite.do(http.MethodPost, "/api/setting/accounts/add", &ExpectedAccountRequestBody{
		AccountName: "Savings",
		TypeID:      suite.accountTypeID("debit_card"),
		Balance:     "1000",
	}), http.StatusOK, account)
	suite.True(account.Balance.IsZero(), "balance is never taken from the request")
	suite.True(account.IsActive)

	suite.decode(suite.do(http.MethodPut, fmt.Sprintf("/api/setting/accounts/edit/%d", account.ID), &ExpectedAccountRequestBody{
		Description: "rainy day",
		Balance:     "5",
	}), http.StatusOK, account)
	suite.Equal("rainy day", account.Description)
	suite.Equal("Savings", account.AccountName)
	suite.True(account.Balance.IsZero())
	suite.Require().NotNil(account.AccountType)
	suite.Equal("debit_card", account.AccountType.Name)

	page := &ExpectedAccountPage{}
	suite.decode(suite.do(http.MethodGet, "/api/setting/accounts/list?keyword=sav&is_active=true", nil), http.StatusOK, page)
	suite.Equal(1, page.Total)

	checkErrResponse(&suite.TestSuite, suite.do(http.MethodPost, "/api/setting/accounts/add", &ExpectedAccountRequestBody{
		AccountName: "Nowhere",
		TypeID:      9999,
	}), http.StatusNotFound)
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodGet, "/api/setting/accounts/list?is_active=sometimes", nil), http.StatusBadRequest)

	rec := suite.do(http.MethodDelete, fmt.Sprintf("/api/setting/accounts/delete/%d", account.ID), nil)
	suite.Equal(http.StatusNoContent, rec.Code)
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodGet, fmt.Sprintf("/api/setting/accounts/detail/%d", account.ID), nil), http.StatusNotFound)
}

func (suite *SettingsTestSuite) TestVerifyAndRecompute() {
	cash := suite.createAccount("Wallet", "cash")
	salary := suite.createCategory("Salary", "income", 0)
	created := suite.addTransactions([]ExpectedAddTransactionRequestBody{
		{AccountID: cash, CategoryID: salary, Amount: "10", TransactionType: "income", TransactionDate: "2024-01-02"},
		{AccountID: cash, CategoryID: salary, Amount: "5", TransactionType: "income", TransactionDate: "2024-01-03"},
	})

	report := &ExpectedChainReport{}
	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/setting/accounts/verify/%d", cash), nil), http.StatusOK, report)
	suite.Equal(2, report.Rows)
	suite.Empty(report.Mismatches)

	_, err := suite.svc.DB.NewUpdate().
		Model((*models.Transaction)(nil)).
		Set("balance_after = ?", models.NewMoney(decimal.NewFromInt(7))).
		Where("id = ?", created[0].ID).
		Exec(context.Background())
	suite.Require().NoError(err)

	suite.decode(suite.do(http.MethodPost, fmt.Sprintf("/api/setting/accounts/recompute/%d", cash), nil), http.StatusOK, report)
	suite.Require().Len(report.Mismatches, 1)
	suite.Equal(created[0].ID, report.Mismatches[0].TransactionID)

	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/setting/accounts/verify/%d", cash), nil), http.StatusOK, report)
	suite.Empty(report.Mismatches)

	checkErrResponse(&suite.TestSuite, suite.do(http.MethodGet, "/api/setting/accounts/verify/9999", nil), http.StatusNotFound)
}

func (suite *SettingsTestSuite) TestAccountTypeEndpoints() {
	accountType := &ExpectedAccountType{}
	suite.decode(suite.do(http.MethodPost, "/api/setting/accountTypes/add", map[string]interface{}{
		"name":          "brokerage",
		"can_overdraft": false,
	}), http.StatusOK, accountType)
	suite.NotZero(accountType.ID)

	checkErrResponse(&suite.TestSuite, suite.do(http.MethodPost, "/api/setting/accountTypes/add", map[string]string{"name": "brokerage"}), http.StatusConflict)
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodPost, "/api/setting/accountTypes/add", map[string]string{}), http.StatusBadRequest)

	suite.createAccount("Wallet", "cash")
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodDelete, fmt.Sprintf("/api/setting/accountTypes/delete/%d", suite.accountTypeID("cash")), nil), http.StatusConflict)

	rec := suite.do(http.MethodDelete, fmt.Sprintf("/api/setting/accountTypes/delete/%d", accountType.ID), nil)
	suite.Equal(http.StatusNoContent, rec.Code)
}

func (suite *SettingsTestSuite) TestCategoryEndpoints() {
	food := suite.createCategory("Food", "expense", 0)
	groceries := suite.createCategory("Groceries", "expense", food)
	suite.createCategory("Salary", "income", 0)

	nodes := []ExpectedCategoryNode{}
	suite.decode(suite.do(http.MethodGet, "/api/setting/category/list?type=expense", nil), http.StatusOK, &nodes)
	suite.Require().Len(nodes, 1)
	suite.Equal(food, nodes[0].ID)
	suite.Require().Len(nodes[0].Children, 1)
	suite.Equal(groceries, nodes[0].Children[0].ID)

	category := &ExpectedCategory{}
	suite.decode(suite.do(http.MethodGet, fmt.Sprintf("/api/setting/category/detail/%d", groceries), nil), http.StatusOK, category)
	suite.Equal(food, category.ParentID)

	checkErrResponse(&suite.TestSuite, suite.do(http.MethodPost, "/api/setting/category/add", &ExpectedCategoryRequestBody{Name: "Bonus", Type: "income", ParentID: food}), http.StatusBadRequest)
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodPost, "/api/setting/category/add", &ExpectedCategoryRequestBody{Name: "Food", Type: "expense"}), http.StatusConflict)
	checkErrResponse(&suite.TestSuite, suite.do(http.MethodDelete, fmt.Sprintf("/api/setting/category/delete/%d", food), nil), http.StatusConflict)

	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, fmt.Sprintf("/api/setting/category/delete/%d", groceries), nil).Code)
	suite.Equal(http.StatusNoContent, suite.do(http.MethodDelete, fmt.Sprintf("/api/setting/category/delete/%d", food), nil).Code)
}

func TestSettingsSuite(t *testing.T) {
	suite.Run(t, new(SettingsTestSuite))
}
