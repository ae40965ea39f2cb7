package service_test

import (
	"github.com/familyfin/ledgerhub/common"
	"github.com/familyfin/ledgerhub/db/models"
	"github.com/familyfin/ledgerhub/lib/service"
)

func (suite *LedgerTestSuite) TestAccountLifecycle() {
	account, err := suite.svc.CreateAccount(suite.ctx, service.AccountParams{
		AccountName:   "  Savings ",
		AccountNumber: "6222-0001",
		TypeID:        suite.accountTypeID("debit_card"),
		Institution:   "ICBC",
	})
	suite.Require().NoError(err)
	suite.Equal("Savings", account.AccountName)
	suite.Equal("CNY", account.Currency)
	suite.True(account.IsActive)
	suite.assertDecimal("0", account.Balance)

	_, err = suite.svc.CreateAccount(suite.ctx, service.AccountParams{
		AccountName:   "Duplicate",
		AccountNumber: "6222-0001",
		TypeID:        suite.accountTypeID("debit_card"),
	})
	suite.True(service.IsConflict(err), "got %v", err)

	_, err = suite.svc.CreateAccount(suite.ctx, service.AccountParams{AccountName: "Nowhere", TypeID: 9999})
	suite.True(service.IsNotFound(err))
	_, err = suite.svc.CreateAccount(suite.ctx, service.AccountParams{TypeID: suite.accountTypeID("cash")})
	suite.True(service.IsValidation(err))

	inactive := false
	updated, err := suite.svc.UpdateAccount(suite.ctx, account.ID, service.AccountParams{
		Description: "emergency fund",
		IsActive:    &inactive,
	})
	suite.Require().NoError(err)
	suite.Equal("Savings", updated.AccountName)
	suite.Equal("emergency fund", updated.Description)
	suite.False(updated.IsActive)
	suite.Require().NotNil(updated.AccountType)
	suite.Equal("debit_card", updated.AccountType.Name)

	suite.Require().NoError(suite.svc.DeleteAccount(suite.ctx, account.ID))
	_, err = suite.svc.GetAccount(suite.ctx, account.ID)
	suite.True(service.IsNotFound(err))
}

func (suite *LedgerTestSuite) TestAccountBalanceIsNotWritable() {
	suite.income(suite.cash, "100", day(1))
	_, err := suite.svc.UpdateAccount(suite.ctx, suite.cash, service.AccountParams{AccountName: "Pocket"})
	suite.Require().NoError(err)
	suite.assertBalance(suite.cash, "100")
	suite.assertConsistent(suite.cash)
}

func (suite *LedgerTestSuite) TestUsedAccountCannotBeDeleted() {
	suite.transfer(suite.cash, suite.bank, "10", day(1))
	suite.True(service.IsConflict(suite.svc.DeleteAccount(suite.ctx, suite.cash)))
	suite.True(service.IsConflict(suite.svc.DeleteAccount(suite.ctx, suite.bank)))
	suite.Require().NoError(suite.svc.DeleteAccount(suite.ctx, suite.card))
	suite.True(service.IsNotFound(suite.svc.DeleteAccount(suite.ctx, suite.card)))
}

func (suite *LedgerTestSuite) TestListAccounts() {
	inactive := false
	_, err := suite.svc.UpdateAccount(suite.ctx, suite.card, service.AccountParams{IsActive: &inactive})
	suite.Require().NoError(err)
	suite.income(suite.bank, "500", day(1))
	suite.income(suite.cash, "20", day(1))

	active := true
	page, err := suite.svc.ListAccounts(suite.ctx, service.AccountFilter{IsActive: &active, SortField: "balance", SortDesc: true})
	suite.Require().NoError(err)
	suite.Equal(2, page.Total)
	suite.Require().Len(page.List, 2)
	suite.Equal(suite.bank, page.List[0].ID)
	suite.Equal(suite.cash, page.List[1].ID)

	page, err = suite.svc.ListAccounts(suite.ctx, service.AccountFilter{Keyword: "vis"})
	suite.Require().NoError(err)
	suite.Equal(1, page.Total)
	suite.Equal(suite.card, page.List[0].ID)

	page, err = suite.svc.ListAccounts(suite.ctx, service.AccountFilter{TypeID: suite.accountTypeID("cash"), PageSize: 1})
	suite.Require().NoError(err)
	suite.Equal(1, page.Total)
	suite.Equal(1, page.PageSize)
}

func (suite *LedgerTestSuite) TestAccountTypes() {
	seeded, err := suite.svc.ListAccountTypes(suite.ctx)
	suite.Require().NoError(err)
	flags := map[string][2]bool{}
	for _, accountType := range seeded {
		flags[accountType.Name] = [2]bool{accountType.CanOverdraft, accountType.IsDigital}
	}
	suite.Equal([2]bool{true, false}, flags["credit_card"])
	suite.Equal([2]bool{false, true}, flags["e_wallet"])
	suite.Equal([2]bool{false, false}, flags["cash"])

	created, err := suite.svc.CreateAccountType(suite.ctx, &models.AccountType{Name: "brokerage", Icon: "chart"})
	suite.Require().NoError(err)
	suite.NotZero(created.ID)

	_, err = suite.svc.CreateAccountType(suite.ctx, &models.AccountType{Name: "brokerage"})
	suite.True(service.IsConflict(err))
	_, err = suite.svc.CreateAccountType(suite.ctx, &models.AccountType{Name: " "})
	suite.True(service.IsValidation(err))

	suite.True(service.IsConflict(suite.svc.DeleteAccountType(suite.ctx, suite.accountTypeID("cash"))))
	suite.Require().NoError(suite.svc.DeleteAccountType(suite.ctx, created.ID))
	suite.True(service.IsNotFound(suite.svc.DeleteAccountType(suite.ctx, created.ID)))
}

func (suite *LedgerTestSuite) TestCategoryTree() {
	groceries, err := suite.svc.CreateCategory(suite.ctx, &models.Category{Name: "Groceries", Type: common.CategoryTypeExpense, ParentID: suite.food})
	suite.Require().NoError(err)
	suite.True(groceries.IsActive)

	_, err = suite.svc.CreateCategory(suite.ctx, &models.Category{Name: "Groceries", Type: common.CategoryTypeExpense, ParentID: suite.food})
	suite.True(service.IsConflict(err))
	_, err = suite.svc.CreateCategory(suite.ctx, &models.Category{Name: "Bonus", Type: common.CategoryTypeIncome, ParentID: suite.food})
	suite.True(service.IsValidation(err))
	_, err = suite.svc.CreateCategory(suite.ctx, &models.Category{Name: "Gifts", Type: "other"})
	suite.True(service.IsValidation(err))
	_, err = suite.svc.CreateCategory(suite.ctx, &models.Category{Name: "Orphan", Type: common.CategoryTypeExpense, ParentID: 9999})
	suite.True(service.IsNotFound(err))

	nodes, err := suite.svc.ListCategories(suite.ctx, common.CategoryTypeExpense)
	suite.Require().NoError(err)
	suite.Require().Len(nodes, 2)
	suite.Equal(suite.food, nodes[0].ID)
	suite.Require().Len(nodes[0].Children, 1)
	suite.Equal(groceries.ID, nodes[0].Children[0].ID)
	suite.Empty(nodes[1].Children)

	all, err := suite.svc.ListCategories(suite.ctx, "")
	suite.Require().NoError(err)
	suite.Len(all, 3)

	suite.True(service.IsConflict(suite.svc.DeleteCategory(suite.ctx, suite.food)))
	suite.expense(suite.cash, "5", day(1))
	suite.True(service.IsConflict(suite.svc.DeleteCategory(suite.ctx, suite.food)))
	suite.Require().NoError(suite.svc.DeleteCategory(suite.ctx, groceries.ID))
	suite.True(service.IsNotFound(suite.svc.DeleteCategory(suite.ctx, groceries.ID)))
}
